package ftl

import "testing"

func testGeometry() Geometry {
	return Geometry{
		SSDSize: 2, PackageSize: 2, DieSize: 2, PlaneSize: 8,
		BlockSize: 4, Overprovisioning: 10, BlockErases: 1000,
	}
}

func TestGeometry_Derived(t *testing.T) {
	g := testGeometry()
	if got := g.TotalBlocks(); got != 64 {
		t.Fatalf("TotalBlocks = %d, want 64", got)
	}
	if got := g.TotalPages(); got != 256 {
		t.Fatalf("TotalPages = %d, want 256", got)
	}
	if got := g.ReservedBlocks(); got != 6 {
		t.Fatalf("ReservedBlocks = %d, want 6", got)
	}
	if got := g.DataBlocks(); got != 58 {
		t.Fatalf("DataBlocks = %d, want 58", got)
	}
	if got := g.CleaningBlockIndex(); got != 63 {
		t.Fatalf("CleaningBlockIndex = %d, want 63", got)
	}
	if got := g.LogReservationCapacity(); got != 5 {
		t.Fatalf("LogReservationCapacity = %d, want 5", got)
	}
}

func TestGeometry_DecomposeComposeRoundTrip(t *testing.T) {
	g := testGeometry()
	for lba := uint64(0); lba < uint64(g.TotalPages()); lba++ {
		addr := g.Decompose(lba)
		base := g.Compose(addr.Package, addr.Die, addr.Plane, addr.Block)
		got := base + uint64(addr.Page)
		if got != lba {
			t.Fatalf("lba %d: decompose/compose round trip gave %d", lba, got)
		}
	}
}

func TestGeometry_DecomposeBounds(t *testing.T) {
	g := testGeometry()
	addr := g.Decompose(0)
	if addr.Package != 0 || addr.Die != 0 || addr.Plane != 0 || addr.Block != 0 || addr.Page != 0 {
		t.Fatalf("lba 0 decomposed to %+v, want all zero", addr)
	}

	last := uint64(g.TotalPages() - 1)
	addr = g.Decompose(last)
	if addr.Package != g.SSDSize-1 {
		t.Fatalf("lba %d decomposed to package %d, want %d", last, addr.Package, g.SSDSize-1)
	}
	if addr.Page != g.BlockSize-1 {
		t.Fatalf("lba %d decomposed to page %d, want %d", last, addr.Page, g.BlockSize-1)
	}
}

func TestGeometry_BlockBaseAddress(t *testing.T) {
	g := testGeometry()
	addr := g.BlockBaseAddress(g.CleaningBlockIndex())
	if addr.Valid != ValidBlock {
		t.Fatalf("BlockBaseAddress should be ValidBlock, got %v", addr.Valid)
	}
	if addr.Page != 0 {
		t.Fatalf("BlockBaseAddress page = %d, want 0", addr.Page)
	}
}
