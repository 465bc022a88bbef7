package ftl

import (
	"io"

	"github.com/pkg/errors"

	"flashftl/internal/tracelog"
)

// FTL is the façade the controller talks to. It owns the Translator state,
// the Log-Block Directory, the Page-Status Table and the garbage collector
// as a single aggregate (§9 design note) rather than a web of back-pointers:
// GC reads the cached home-decomposition fields directly off this struct.
type FTL struct {
	geometry Geometry
	status   *PageStatusTable
	directory *Directory
	device   DeviceController
	logger   *tracelog.Logger
	gcPolicy string

	totalErasesPerformed int

	// Cached home decomposition, populated by translateWrite/translateRead
	// before the garbage collector (or a diagnostic) needs it.
	homePackage, homeDie, homePlane, homeBlock int
}

// New constructs an FTL for the given geometry, wired to device for
// executing resolved events and logger for the translation trace sink. If
// logger is nil, a discarding logger is used.
func New(g Geometry, device DeviceController, logger *tracelog.Logger) (*FTL, error) {
	if device == nil {
		return nil, errors.New("ftl: device controller is required")
	}
	if g.TotalPages() <= 0 || g.BlockSize <= 0 {
		return nil, ErrOutOfMemory
	}
	if logger == nil {
		logger = tracelog.New(io.Discard)
	}

	return &FTL{
		geometry:  g,
		status:    NewPageStatusTable(g.TotalPages()),
		directory: NewDirectory(g),
		device:    device,
		logger:    logger,
		gcPolicy:  gcPolicyFIFO,
	}, nil
}

// Read translates event.LBA under the read policy and forwards it to the
// device controller.
func (f *FTL) Read(event *Event) error {
	event.Kind = EventRead
	if err := f.translateRead(event); err != nil {
		f.logger.Invalid(event.LBA)
		return err
	}
	f.logMapped(event)
	return f.issueHostEvent(event)
}

// Write translates event.LBA under the write policy — allocating or
// cleaning a log block as required — and forwards it to the device
// controller.
func (f *FTL) Write(event *Event) error {
	event.Kind = EventWrite
	if err := f.translateWrite(event); err != nil {
		f.logger.Invalid(event.LBA)
		return err
	}
	f.logMapped(event)
	return f.issueHostEvent(event)
}

// Erase resolves event.LBA's current physical address (via the read policy,
// since an erase always targets an already-mapped location) and forwards it
// to the device controller. Non-goal §1: no concurrent host erase traffic is
// exercised in this core, but the entry point exists alongside read/write.
func (f *FTL) Erase(event *Event) error {
	if err := f.translateRead(event); err != nil {
		f.logger.Invalid(event.LBA)
		return err
	}
	f.logMapped(event)
	event.Kind = EventErase
	return f.issueHostEvent(event)
}

// Merge resolves event.LBA the same way as Erase and forwards it. Only
// READ and WRITE arrive from the host in this core (§4.6); Erase/Merge are
// exposed for symmetry with the controller's event-kind switch.
func (f *FTL) Merge(event *Event) error {
	if err := f.translateRead(event); err != nil {
		f.logger.Invalid(event.LBA)
		return err
	}
	f.logMapped(event)
	event.Kind = EventMerge
	return f.issueHostEvent(event)
}

// issueHostEvent forwards an already-translated event to the device
// controller, wrapping any rejection into ErrDeviceFailure (§7) so callers
// on the direct host path can errors.Is against it the same way GC
// sub-events wrap into ErrGarbageCollectionFailed.
func (f *FTL) issueHostEvent(event *Event) error {
	if err := f.device.Issue(event); err != nil {
		return errors.Wrapf(ErrDeviceFailure, "%s lba %d: %v", event.Kind, event.LBA, err)
	}
	return nil
}

// GarbageCollect runs a cleaning cycle for event.LBA's home data block. It
// runs the same cycle (collect) that the Translator runs internally when a
// log block saturates; calling it directly requires an existing log-block
// mapping.
func (f *FTL) GarbageCollect(event *Event) error {
	h := int(event.LBA / uint64(f.geometry.BlockSize))
	if !f.directory.Has(h) {
		return errors.New("ftl: garbage collection requested for a block with no log mapping")
	}
	f.cacheHome(h)
	return f.collect(h, f.directory.Get(h))
}

// TotalErasesPerformed is the running count of block erases executed across
// all garbage-collection cycles (three per cycle: home block, log block,
// cleaning block).
func (f *FTL) TotalErasesPerformed() int { return f.totalErasesPerformed }

// Valid reports whether addr is the physical address that lba currently
// resolves to, without mutating any state beyond the translator's home
// cache. A read-only diagnostic used by tests.
func (f *FTL) Valid(lba uint64, addr Address) bool {
	ev := &Event{LBA: lba}
	if err := f.translateRead(ev); err != nil {
		return false
	}
	return ev.PhysicalAddress == addr
}

// GCPolicy reports the cleaning policy tag (always "FIFO" in this core).
func (f *FTL) GCPolicy() string { return f.gcPolicy }

func (f *FTL) logMapped(event *Event) {
	a := event.PhysicalAddress
	f.logger.Mapped(event.LBA, a.Package, a.Die, a.Plane, a.Block, a.Page)
}
