// Command ftlsim replays a trace of READ/WRITE events against the FTL core
// and an in-memory device simulator, printing a final summary. It exists to
// exercise internal/ftl end to end the way the out-of-scope simulator
// front-end (§1 of the core spec) would drive it in the full system.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"flashftl/internal/devicesim"
	"flashftl/internal/ftl"
	"flashftl/internal/ftlconfig"
	"flashftl/internal/tracelog"
)

var (
	flagConfig = flag.String("config", "", "path to a geometry YAML config file (default: built-in demo geometry)")
	flagTrace  = flag.String("trace", "", "path to an event trace file (lines: 'READ <lba>' or 'WRITE <lba>'); reads stdin if empty")
)

func main() {
	flag.Parse()

	geometry := ftlconfig.Default()
	if *flagConfig != "" {
		g, err := ftlconfig.Load(*flagConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			os.Exit(1)
		}
		geometry = g
	}

	logger := tracelog.New(os.Stdout)
	logger.LogGeometry(tracelog.GeometrySummary{
		TotalBlocks:      geometry.TotalBlocks(),
		DataBlocks:       geometry.DataBlocks(),
		ReservedBlocks:   geometry.ReservedBlocks(),
		TotalPages:       geometry.TotalPages(),
		BlockSize:        geometry.BlockSize,
		Overprovisioning: geometry.Overprovisioning,
	})

	device := devicesim.New(geometry)
	core, err := ftl.New(geometry, device, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ftl init error:", err)
		os.Exit(1)
	}

	in := os.Stdin
	if *flagTrace != "" {
		f, err := os.Open(*flagTrace)
		if err != nil {
			fmt.Fprintln(os.Stderr, "trace error:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	replay(core, in)

	fmt.Printf("total erases performed: %d\n", core.TotalErasesPerformed())
}

func replay(core *ftl.FTL, in *os.File) {
	sc := bufio.NewScanner(in)
	var t int64
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			continue
		}
		lba, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "skipping malformed line:", sc.Text())
			continue
		}
		t++
		event := &ftl.Event{LBA: lba, Size: 1, StartTime: t}

		var opErr error
		switch strings.ToUpper(fields[0]) {
		case "READ":
			opErr = core.Read(event)
		case "WRITE":
			opErr = core.Write(event)
		default:
			fmt.Fprintln(os.Stderr, "unknown op, skipping:", sc.Text())
			continue
		}
		if opErr != nil {
			fmt.Fprintf(os.Stderr, "%s LBA %d failed: %v\n", fields[0], lba, opErr)
		}
	}
}
