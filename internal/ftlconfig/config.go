// Package ftlconfig is the external configuration loader: it reads the
// key/value geometry and timing constants the FTL is constructed with
// (§6 of the core spec) and hands back an ftl.Geometry value. The FTL
// itself never reads files or environment — it only ever sees the value
// this package produces.
package ftlconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"flashftl/internal/ftl"
)

// Load reads a YAML geometry/timing document from path and returns the
// Geometry the FTL is constructed with. Only the geometry fields,
// Overprovisioning and BlockErases are consumed by the FTL itself; the
// RAM/bus delay fields are parsed for completeness and are meant for the
// out-of-scope RAM and bus timing channels.
func Load(path string) (ftl.Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ftl.Geometry{}, fmt.Errorf("ftlconfig: reading %s: %w", path, err)
	}

	var g ftl.Geometry
	if err := yaml.Unmarshal(data, &g); err != nil {
		return ftl.Geometry{}, fmt.Errorf("ftlconfig: parsing %s: %w", path, err)
	}
	if err := Validate(g); err != nil {
		return ftl.Geometry{}, err
	}
	return g, nil
}

// Validate checks that a geometry describes a legal flash topology:
// positive dimensions and an overprovisioning percentage in [0,100).
func Validate(g ftl.Geometry) error {
	if g.SSDSize <= 0 || g.PackageSize <= 0 || g.DieSize <= 0 || g.PlaneSize <= 0 || g.BlockSize <= 0 {
		return fmt.Errorf("ftlconfig: ssd_size, package_size, die_size, plane_size and block_size must all be positive (got %+v)", g)
	}
	if g.Overprovisioning < 0 || g.Overprovisioning >= 100 {
		return fmt.Errorf("ftlconfig: overprovisioning must be in [0,100), got %d", g.Overprovisioning)
	}
	if g.ReservedBlocks() < 1 {
		return fmt.Errorf("ftlconfig: overprovisioning %d%% reserves zero blocks for a %d-block device; there would be no room for the cleaning block", g.Overprovisioning, g.TotalBlocks())
	}
	return nil
}

// Default returns a small, deterministic geometry used by tests and the
// demo CLI when no config file is supplied: 64 blocks of 4 pages each,
// 10% overprovisioned (6 reserved blocks: 5 for log-block reservation, 1
// cleaning block) — the same shape of configuration the core spec's test
// harness exercises (§8).
func Default() ftl.Geometry {
	return ftl.Geometry{
		SSDSize:          2,
		PackageSize:      2,
		DieSize:          2,
		PlaneSize:        8,
		BlockSize:        4,
		Overprovisioning: 10,
		BlockErases:      1000,
		RAMReadDelay:     1,
		RAMWriteDelay:    1,
		BusCtrlDelay:     1,
		BusDataDelay:     1,
		BusTableSize:     1,
		BusMaxConnect:    1,
	}
}
