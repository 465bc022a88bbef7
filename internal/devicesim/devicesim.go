// Package devicesim is a minimal stand-in for the out-of-scope physical
// device model (§1 of the core spec): it tracks per-page state
// (empty/valid) and a per-block erase budget, and rejects the writes/reads/
// erases the real controller would reject. It plays the same role for this
// module's tests and demo CLI that the teacher's MemoryBackend
// (internal/storage/backend_memory.go) plays for tinySQL's in-memory mode:
// a small, dependency-free reference implementation of an external
// contract, not a production device model.
package devicesim

import (
	"fmt"

	"flashftl/internal/ftl"
)

// Device implements ftl.DeviceController over an in-memory page/block map.
type Device struct {
	geometry        ftl.Geometry
	written         []bool
	erasesRemaining []int
	erasesPerformed int
}

// New builds a Device sized for geometry g, with every block starting at
// g.BlockErases remaining erases and every page empty.
func New(g ftl.Geometry) *Device {
	erasesRemaining := make([]int, g.TotalBlocks())
	for i := range erasesRemaining {
		erasesRemaining[i] = g.BlockErases
	}
	return &Device{
		geometry:        g,
		written:         make([]bool, g.TotalPages()),
		erasesRemaining: erasesRemaining,
	}
}

// Issue executes event against the simulated device.
func (d *Device) Issue(event *ftl.Event) error {
	addr := event.PhysicalAddress
	switch event.Kind {
	case ftl.EventRead, ftl.EventMerge:
		idx := d.pageIndex(addr)
		if !d.written[idx] {
			return fmt.Errorf("devicesim: read of empty page %s", addr)
		}
		return nil

	case ftl.EventWrite:
		idx := d.pageIndex(addr)
		if d.written[idx] {
			return fmt.Errorf("devicesim: write to already-valid page %s", addr)
		}
		d.written[idx] = true
		return nil

	case ftl.EventErase:
		b := d.blockIndex(addr)
		if d.erasesRemaining[b] <= 0 {
			return fmt.Errorf("devicesim: block %d has no erases remaining", b)
		}
		d.erasesRemaining[b]--
		d.erasesPerformed++
		base := b * d.geometry.BlockSize
		for p := 0; p < d.geometry.BlockSize; p++ {
			d.written[base+p] = false
		}
		return nil

	default:
		return fmt.Errorf("devicesim: unknown event kind %v", event.Kind)
	}
}

// ErasesPerformed is the running count of ERASE events the device has
// executed, independent of the FTL's own bookkeeping — used by tests to
// cross-check ftl.FTL.TotalErasesPerformed.
func (d *Device) ErasesPerformed() int { return d.erasesPerformed }

// ErasesRemaining reports the erase budget left on block b.
func (d *Device) ErasesRemaining(block int) int { return d.erasesRemaining[block] }

func (d *Device) blockIndex(addr ftl.Address) int {
	return ((addr.Package*d.geometry.PackageSize+addr.Die)*d.geometry.DieSize+addr.Plane)*d.geometry.PlaneSize + addr.Block
}

func (d *Device) pageIndex(addr ftl.Address) int {
	return d.blockIndex(addr)*d.geometry.BlockSize + addr.Page
}
