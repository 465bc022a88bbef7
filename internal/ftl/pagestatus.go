package ftl

// PageStatusTable is a dense bitmap over every raw page in the address
// space, recording written vs. empty. It is initialized to all-empty and
// never reset by a READ.
type PageStatusTable struct {
	words []uint64
	total int
}

const wordBits = 64

// NewPageStatusTable allocates a bitmap large enough for totalPages pages,
// all initially empty.
func NewPageStatusTable(totalPages int) *PageStatusTable {
	return &PageStatusTable{
		words: make([]uint64, (totalPages+wordBits-1)/wordBits),
		total: totalPages,
	}
}

// IsWritten reports whether lba currently holds a written page.
func (t *PageStatusTable) IsWritten(lba uint64) bool {
	i := int(lba)
	return t.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// MarkWritten sets lba's bit. Idempotent in the written→written direction.
func (t *PageStatusTable) MarkWritten(lba uint64) {
	i := int(lba)
	t.words[i/wordBits] |= 1 << uint(i%wordBits)
}

// MarkEmpty clears lba's bit, for callers that need to retire an lba
// outright. The garbage collector does not call it: a written page stays
// written across a clean, because the restore phase puts it back at its home
// address, and the restore phase reads these bits to pick the pages to copy.
func (t *PageStatusTable) MarkEmpty(lba uint64) {
	i := int(lba)
	t.words[i/wordBits] &^= 1 << uint(i%wordBits)
}
