// Package ftl implements the Flash Translation Layer core: address
// translation, page-status tracking, log-block indirection and the
// garbage-collection cleaning procedure described by the core
// specification. It mediates between a linear logical address space (the
// LBA the host presents) and the hierarchical physical flash topology
// (package/die/plane/block/page) exposed by an external device model.
package ftl

import "fmt"

// ValidLevel denotes the finest level of an Address that is actually
// populated. A home-block address is ValidBlock; a fully resolved
// physical address handed to the device is ValidPage.
type ValidLevel int

const (
	ValidNone ValidLevel = iota
	ValidPackage
	ValidBlock
	ValidPage
)

// Address is the physical block address (PBA): the 5-tuple
// (package, die, plane, block, page).
type Address struct {
	Package int
	Die     int
	Plane   int
	Block   int
	Page    int
	Valid   ValidLevel
}

func (a Address) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d, %d)", a.Package, a.Die, a.Plane, a.Block, a.Page)
}

// Geometry fixes the flash hierarchy and the overprovisioning policy. It is
// an immutable value, loaded once by internal/ftlconfig and passed to New —
// the core never reaches for process-wide geometry globals.
type Geometry struct {
	SSDSize          int `yaml:"ssd_size"`
	PackageSize      int `yaml:"package_size"`
	DieSize          int `yaml:"die_size"`
	PlaneSize        int `yaml:"plane_size"`
	BlockSize        int `yaml:"block_size"`
	Overprovisioning int `yaml:"overprovisioning"` // percent, [0,100)
	BlockErases      int `yaml:"block_erases"`

	// Timing/bus constants: read once alongside the geometry but never
	// consumed by this core (§6) — they exist for the out-of-scope RAM and
	// bus channel models.
	RAMReadDelay  int `yaml:"ram_read_delay"`
	RAMWriteDelay int `yaml:"ram_write_delay"`
	BusCtrlDelay  int `yaml:"bus_ctrl_delay"`
	BusDataDelay  int `yaml:"bus_data_delay"`
	BusTableSize  int `yaml:"bus_table_size"`
	BusMaxConnect int `yaml:"bus_max_connect"`
}

// TotalBlocks is SSD_SIZE·PACKAGE_SIZE·DIE_SIZE·PLANE_SIZE.
func (g Geometry) TotalBlocks() int {
	return g.SSDSize * g.PackageSize * g.DieSize * g.PlaneSize
}

// TotalPages is TotalBlocks·BLOCK_SIZE.
func (g Geometry) TotalPages() int {
	return g.TotalBlocks() * g.BlockSize
}

// ReservedBlocks is floor(OVERPROVISIONING/100 · TotalBlocks).
func (g Geometry) ReservedBlocks() int {
	return (g.Overprovisioning * g.TotalBlocks()) / 100
}

// DataBlocks is TotalBlocks minus ReservedBlocks.
func (g Geometry) DataBlocks() int {
	return g.TotalBlocks() - g.ReservedBlocks()
}

// CleaningBlockIndex is the highest block index, permanently reserved for
// garbage-collection staging and never handed out as a log reservation.
func (g Geometry) CleaningBlockIndex() int {
	return g.TotalBlocks() - 1
}

// LogReservationCapacity is the number of blocks the log-block directory may
// bind at once: the reservation minus the one cleaning block (I5).
func (g Geometry) LogReservationCapacity() int {
	return g.ReservedBlocks() - 1
}

// Decompose turns a linear LBA into the fully resolved physical address
// (Valid=ValidPage) it lives at in the home (unredirected) topology. It is
// pure and total: any lba in [0, TotalPages) decomposes without error.
func (g Geometry) Decompose(lba uint64) Address {
	blockSize := uint64(g.BlockSize)
	planeSize := uint64(g.PlaneSize)
	dieSize := uint64(g.DieSize)
	pkgSize := uint64(g.PackageSize)

	page := int(lba % blockSize)
	rest := lba / blockSize

	block := int(rest % planeSize)
	rest /= planeSize

	plane := int(rest % dieSize)
	rest /= dieSize

	die := int(rest % pkgSize)
	rest /= pkgSize

	pkg := int(rest)

	return Address{Package: pkg, Die: die, Plane: plane, Block: block, Page: page, Valid: ValidPage}
}

// Compose is the inverse of Decompose's block-level coordinates: it returns
// the block-base LBA (page 0) of the block at (pkg, die, plane, block).
func (g Geometry) Compose(pkg, die, plane, block int) uint64 {
	blockSize := uint64(g.BlockSize)
	idx := uint64(g.blockIndex(pkg, die, plane, block))
	return idx * blockSize
}

// blockIndex linearizes a (pkg, die, plane, block) tuple into the flat
// block-index space [0, TotalBlocks) that the log-reservation range and the
// cleaning block index are expressed in.
func (g Geometry) blockIndex(pkg, die, plane, block int) int {
	return (((pkg*g.PackageSize)+die)*g.DieSize+plane)*g.PlaneSize + block
}

// BlockBaseAddress returns the block-level address (Valid=ValidBlock, Page=0)
// for a flat block index in [0, TotalBlocks).
func (g Geometry) BlockBaseAddress(blockIndex int) Address {
	addr := g.Decompose(uint64(blockIndex) * uint64(g.BlockSize))
	addr.Valid = ValidBlock
	return addr
}
