package ftl

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// gcPolicyFIFO is the only cleaning policy implemented. The parameter exists
// on FTL for forward compatibility with other policies (§4.5); this core
// never branches on it.
const gcPolicyFIFO = "FIFO"

// collect performs the four-phase clean of data block h and its log block e:
// merge into the cleaning block, erase both originals, restore to the data
// block, erase the cleaning block. Each sub-event carries size=1, time=0 and
// a pre-set physical address, bypassing translation entirely (§4.5).
//
// e is retained in the directory but its page entries are reset to empty;
// its physical block is erased and ready to absorb further rewrites for h.
func (f *FTL) collect(h int, e *Entry) error {
	cycle := uuid.NewString()
	f.logger.GCStarted(cycle, h)

	blockSize := f.geometry.BlockSize
	home := f.homeAddress()
	home.Valid = ValidBlock
	cleaning := f.cleaningBlockAddress()

	// Phase M — merge into the cleaning block.
	for p := 0; p < blockSize; p++ {
		if s, ok := e.latestSlotForOffset(p); ok {
			src := e.PhysicalLocation
			src.Page = s
			if err := f.issueGCEvent(EventRead, src, cycle, "phase M read log slot"); err != nil {
				return err
			}
		} else if f.status.IsWritten(uint64(h*blockSize + p)) {
			src := home
			src.Page = p
			if err := f.issueGCEvent(EventRead, src, cycle, "phase M read home page"); err != nil {
				return err
			}
		} else {
			continue // never written in either location
		}
		dst := cleaning
		dst.Page = p
		if err := f.issueGCEvent(EventWrite, dst, cycle, "phase M write cleaning page"); err != nil {
			return err
		}
	}

	// Phase E1 — erase originals.
	if err := f.issueGCEvent(EventErase, home, cycle, "phase E1 erase home block"); err != nil {
		return err
	}
	f.totalErasesPerformed++
	if err := f.issueGCEvent(EventErase, e.PhysicalLocation, cycle, "phase E1 erase log block"); err != nil {
		return err
	}
	f.totalErasesPerformed++

	// Phase R — restore into the data block.
	for p := 0; p < blockSize; p++ {
		if !f.status.IsWritten(uint64(h*blockSize + p)) {
			continue
		}
		src := cleaning
		src.Page = p
		if err := f.issueGCEvent(EventRead, src, cycle, "phase R read cleaning page"); err != nil {
			return err
		}
		dst := home
		dst.Page = p
		if err := f.issueGCEvent(EventWrite, dst, cycle, "phase R write home page"); err != nil {
			return err
		}
	}

	// Phase E2 — erase the cleaning block.
	if err := f.issueGCEvent(EventErase, cleaning, cycle, "phase E2 erase cleaning block"); err != nil {
		return err
	}
	f.totalErasesPerformed++

	e.reset()
	f.logger.GCCompleted(cycle, h)
	return nil
}

// issueGCEvent executes one GC sub-event against the device, wrapping any
// rejection into ErrGarbageCollectionFailed with the failing phase and the
// device's own cause attached.
func (f *FTL) issueGCEvent(kind EventKind, addr Address, cycle, phase string) error {
	ev := &Event{Kind: kind, PhysicalAddress: addr, Size: 1}
	if err := f.device.Issue(ev); err != nil {
		return errors.Wrapf(ErrGarbageCollectionFailed, "gc cycle %s, %s: %v", cycle, phase, err)
	}
	return nil
}

// cleaningBlockAddress returns the block-level address of the one block
// permanently reserved for garbage-collection staging (I5).
func (f *FTL) cleaningBlockAddress() Address {
	return f.geometry.BlockBaseAddress(f.geometry.CleaningBlockIndex())
}
