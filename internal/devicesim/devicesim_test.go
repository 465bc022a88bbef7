package devicesim

import (
	"testing"

	"flashftl/internal/ftl"
)

func testGeometry() ftl.Geometry {
	return ftl.Geometry{
		SSDSize: 1, PackageSize: 1, DieSize: 1, PlaneSize: 4,
		BlockSize: 4, Overprovisioning: 25, BlockErases: 2,
	}
}

func TestDevice_WriteThenRead(t *testing.T) {
	g := testGeometry()
	d := New(g)
	addr := g.BlockBaseAddress(0)
	addr.Page = 1

	if err := d.Issue(&ftl.Event{Kind: ftl.EventWrite, PhysicalAddress: addr}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := d.Issue(&ftl.Event{Kind: ftl.EventRead, PhysicalAddress: addr}); err != nil {
		t.Fatalf("read after write: %v", err)
	}
}

func TestDevice_ReadBeforeWriteFails(t *testing.T) {
	g := testGeometry()
	d := New(g)
	addr := g.BlockBaseAddress(0)

	if err := d.Issue(&ftl.Event{Kind: ftl.EventRead, PhysicalAddress: addr}); err == nil {
		t.Fatal("expected an error reading a never-written page")
	}
}

func TestDevice_DoubleWriteFails(t *testing.T) {
	g := testGeometry()
	d := New(g)
	addr := g.BlockBaseAddress(0)

	if err := d.Issue(&ftl.Event{Kind: ftl.EventWrite, PhysicalAddress: addr}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := d.Issue(&ftl.Event{Kind: ftl.EventWrite, PhysicalAddress: addr}); err == nil {
		t.Fatal("expected an error writing an already-valid page")
	}
}

func TestDevice_EraseClearsPagesAndBudget(t *testing.T) {
	g := testGeometry()
	d := New(g)
	addr := g.BlockBaseAddress(0)
	addr.Page = 2

	if err := d.Issue(&ftl.Event{Kind: ftl.EventWrite, PhysicalAddress: addr}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := d.Issue(&ftl.Event{Kind: ftl.EventErase, PhysicalAddress: g.BlockBaseAddress(0)}); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if err := d.Issue(&ftl.Event{Kind: ftl.EventRead, PhysicalAddress: addr}); err == nil {
		t.Fatal("expected the erased page to read back as empty")
	}
	if got := d.ErasesPerformed(); got != 1 {
		t.Fatalf("ErasesPerformed = %d, want 1", got)
	}
	if got := d.ErasesRemaining(0); got != g.BlockErases-1 {
		t.Fatalf("ErasesRemaining(0) = %d, want %d", got, g.BlockErases-1)
	}
}

func TestDevice_EraseBudgetExhausted(t *testing.T) {
	g := testGeometry()
	d := New(g)
	base := g.BlockBaseAddress(0)

	for i := 0; i < g.BlockErases; i++ {
		if err := d.Issue(&ftl.Event{Kind: ftl.EventErase, PhysicalAddress: base}); err != nil {
			t.Fatalf("erase %d: %v", i, err)
		}
	}
	if err := d.Issue(&ftl.Event{Kind: ftl.EventErase, PhysicalAddress: base}); err == nil {
		t.Fatal("expected erase to fail once the block's budget is exhausted")
	}
}

func TestDevice_UnknownEventKindFails(t *testing.T) {
	g := testGeometry()
	d := New(g)
	if err := d.Issue(&ftl.Event{Kind: ftl.EventKind(99)}); err == nil {
		t.Fatal("expected an unknown event kind to fail")
	}
}
