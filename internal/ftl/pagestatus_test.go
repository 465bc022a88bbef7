package ftl

import "testing"

func TestPageStatusTable_WriteReadCycle(t *testing.T) {
	tbl := NewPageStatusTable(256)

	if tbl.IsWritten(10) {
		t.Fatal("expected lba 10 to start empty")
	}

	tbl.MarkWritten(10)
	if !tbl.IsWritten(10) {
		t.Fatal("expected lba 10 to be written after MarkWritten")
	}
	// Idempotent in the written -> written direction.
	tbl.MarkWritten(10)
	if !tbl.IsWritten(10) {
		t.Fatal("expected lba 10 to remain written after a second MarkWritten")
	}

	if tbl.IsWritten(11) {
		t.Fatal("expected neighbouring lba 11 to be unaffected")
	}

	tbl.MarkEmpty(10)
	if tbl.IsWritten(10) {
		t.Fatal("expected lba 10 to be empty after MarkEmpty")
	}
}

func TestPageStatusTable_SpansMultipleWords(t *testing.T) {
	tbl := NewPageStatusTable(200)
	for _, lba := range []uint64{0, 63, 64, 127, 128, 199} {
		tbl.MarkWritten(lba)
	}
	for _, lba := range []uint64{0, 63, 64, 127, 128, 199} {
		if !tbl.IsWritten(lba) {
			t.Fatalf("lba %d should be written", lba)
		}
	}
	if tbl.IsWritten(65) {
		t.Fatal("lba 65 should remain empty")
	}
}
