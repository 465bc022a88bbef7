package ftl

// translateWrite resolves event.LBA to a physical address under the
// deterministic, oldest-first log-fill write policy (§4.4) and writes it
// into event.PhysicalAddress. It also caches the home block's decomposed
// coordinates on the FTL instance so the garbage collector (invoked from
// here when a log block saturates) can identify the block being cleaned
// without recomputing it.
func (f *FTL) translateWrite(event *Event) error {
	lba := event.LBA
	blockSize := f.geometry.BlockSize
	dataBlocks := f.geometry.DataBlocks()

	if lba >= uint64(dataBlocks)*uint64(blockSize) {
		return ErrOverProvisionedRange
	}

	h := int(lba / uint64(blockSize))
	o := int(lba % uint64(blockSize))
	f.cacheHome(h)

	// Step 2: first-touch write — page-level, not block-level.
	if !f.status.IsWritten(lba) {
		addr := f.homeAddress()
		addr.Page = o
		event.PhysicalAddress = addr
		f.status.MarkWritten(lba)
		return nil
	}

	// Step 3: rewrite, log block already allocated for h.
	if f.directory.Has(h) {
		e := f.directory.Get(h)
		if s, ok := e.firstEmptySlot(); ok {
			e.PageEntries[s] = Slot{Offset: o, Valid: true}
			event.PhysicalAddress = logSlotAddress(e, s)
			return nil
		}

		// Log block full: clean it, then reuse the same entry from slot 0.
		if err := f.collect(h, e); err != nil {
			return err
		}
		e.PageEntries[0] = Slot{Offset: o, Valid: true}
		event.PhysicalAddress = logSlotAddress(e, 0)
		return nil
	}

	// Step 4: rewrite, no log block yet for h.
	nextIdx := dataBlocks + f.directory.Len()
	loc := f.geometry.BlockBaseAddress(nextIdx)
	e, err := f.directory.Create(h, loc)
	if err != nil {
		return err
	}
	e.PageEntries[0] = Slot{Offset: o, Valid: true}
	event.PhysicalAddress = logSlotAddress(e, 0)
	return nil
}

// translateRead resolves event.LBA under the read policy (§4.4): an
// unwritten lba always fails, even when its home block is otherwise live;
// otherwise the latest log-block copy wins over the home page.
func (f *FTL) translateRead(event *Event) error {
	lba := event.LBA
	blockSize := f.geometry.BlockSize

	if !f.status.IsWritten(lba) {
		return ErrUnwrittenRead
	}

	h := int(lba / uint64(blockSize))
	o := int(lba % uint64(blockSize))
	f.cacheHome(h)

	if f.directory.Has(h) {
		e := f.directory.Get(h)
		if s, ok := e.latestSlotForOffset(o); ok {
			event.PhysicalAddress = logSlotAddress(e, s)
			return nil
		}
	}

	addr := f.homeAddress()
	addr.Page = o
	event.PhysicalAddress = addr
	return nil
}

// logSlotAddress returns the fully resolved page address for slot s of a
// log-block entry.
func logSlotAddress(e *Entry, s int) Address {
	addr := e.PhysicalLocation
	addr.Page = s
	addr.Valid = ValidPage
	return addr
}

// cacheHome decomposes data-block h's home location and caches it on the
// FTL instance for the garbage collector to consume.
func (f *FTL) cacheHome(h int) {
	home := f.geometry.BlockBaseAddress(h)
	f.homePackage, f.homeDie, f.homePlane, f.homeBlock = home.Package, home.Die, home.Plane, home.Block
}

// homeAddress reconstructs the cached home block's base address
// (Valid=ValidPage, Page=0 until overridden by the caller).
func (f *FTL) homeAddress() Address {
	return Address{Package: f.homePackage, Die: f.homeDie, Plane: f.homePlane, Block: f.homeBlock, Valid: ValidPage}
}
