package ftl

import "github.com/samber/lo"

// Slot is one page-entry of a log-block Entry: either empty, or holding the
// data-block page-offset it currently mirrors. Replaces the sentinel "-1"
// of the reference design with a proper optional value (§9 design note).
type Slot struct {
	Offset int
	Valid  bool
}

// Entry is a currently-mapped log block: its reserved physical location plus
// the ordered page-entry record. Slot index is write order — the earliest
// slot is the oldest copy, the latest non-empty slot is the newest.
type Entry struct {
	PhysicalLocation Address
	PageEntries      []Slot
}

func newEntry(loc Address, blockSize int) *Entry {
	return &Entry{PhysicalLocation: loc, PageEntries: make([]Slot, blockSize)}
}

// firstEmptySlot returns the lowest-indexed empty slot, if any.
func (e *Entry) firstEmptySlot() (int, bool) {
	_, idx, ok := lo.FindIndexOf(e.PageEntries, func(s Slot) bool { return !s.Valid })
	return idx, ok
}

// latestSlotForOffset scans from the highest index downward and returns the
// first (i.e. most recent) slot mirroring pageOffset. This is the
// correctness hinge for reads through a log block: repeated writes to the
// same offset must yield the newest copy.
func (e *Entry) latestSlotForOffset(pageOffset int) (int, bool) {
	_, idx, ok := lo.FindLastIndexOf(e.PageEntries, func(s Slot) bool {
		return s.Valid && s.Offset == pageOffset
	})
	return idx, ok
}

// reset clears all page entries back to empty. Called immediately after GC
// reclaims the entry's physical block.
func (e *Entry) reset() {
	for i := range e.PageEntries {
		e.PageEntries[i] = Slot{}
	}
}

// Directory maps a data-block index to its reserved log-block Entry. At most
// one entry per data block, and at most LogReservationCapacity entries in
// total (the reservation minus the cleaning block). Allocation is
// monotonically increasing and never shrinks — GC resets an entry's page
// entries but keeps the data-block binding for the FTL's lifetime.
type Directory struct {
	entries   map[int]*Entry
	order     []int // data-block indices in allocation order (I4)
	blockSize int
	capacity  int // LogReservationCapacity
}

// NewDirectory builds an empty directory sized for geometry g.
func NewDirectory(g Geometry) *Directory {
	return &Directory{
		entries:   make(map[int]*Entry),
		blockSize: g.BlockSize,
		capacity:  g.LogReservationCapacity(),
	}
}

// Has reports whether dataBlock currently has a log-block mapping.
func (d *Directory) Has(dataBlock int) bool {
	_, ok := d.entries[dataBlock]
	return ok
}

// Get returns the entry for dataBlock. Precondition: Has(dataBlock).
func (d *Directory) Get(dataBlock int) *Entry {
	return d.entries[dataBlock]
}

// Len is the number of data blocks currently holding a log-block mapping.
func (d *Directory) Len() int { return len(d.entries) }

// Create reserves a new log block at physical location loc for dataBlock.
// Fails with ErrNoLogBlockAvailable once the reservation is exhausted.
func (d *Directory) Create(dataBlock int, loc Address) (*Entry, error) {
	if len(d.entries) >= d.capacity {
		return nil, ErrNoLogBlockAvailable
	}
	e := newEntry(loc, d.blockSize)
	d.entries[dataBlock] = e
	d.order = append(d.order, dataBlock)
	return e, nil
}
