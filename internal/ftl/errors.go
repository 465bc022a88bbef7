package ftl

import "github.com/pkg/errors"

// Error kinds returned by translation and garbage collection (§7). No
// exceptions — callers compare with errors.Is, and GC failures keep the
// underlying device-rejection cause attached via errors.Wrapf.
var (
	// ErrOverProvisionedRange is returned when a write addresses an lba at
	// or beyond DataBlocks()·BlockSize — the host-invisible reservation.
	ErrOverProvisionedRange = errors.New("ftl: lba falls in the overprovisioned reservation, outside the host-addressable data range")

	// ErrUnwrittenRead is returned when reading an lba that has never been
	// written, even if its home block is otherwise live.
	ErrUnwrittenRead = errors.New("ftl: read of an lba that has never been written")

	// ErrNoLogBlockAvailable is returned when a rewrite needs a fresh log
	// block but the log-block reservation is exhausted.
	ErrNoLogBlockAvailable = errors.New("ftl: log-block reservation exhausted, no block available for rewrite")

	// ErrDeviceFailure is returned when the device controller rejects an
	// event issued directly on the host read/write path.
	ErrDeviceFailure = errors.New("ftl: device controller rejected an event")

	// ErrGarbageCollectionFailed is returned when any sub-event of a
	// garbage-collection cycle (merge, erase or restore) is rejected by the
	// device. GC is not retried; this is fatal to the FTL instance.
	ErrGarbageCollectionFailed = errors.New("ftl: garbage collection sub-event failed")

	// ErrOutOfMemory is returned by New when the page-status bitmap or
	// directory cannot be sized for the requested geometry. Fatal.
	ErrOutOfMemory = errors.New("ftl: allocation failure while sizing ftl state")
)
