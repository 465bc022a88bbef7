// Package tracelog implements the FTL's append-only trace sink: one line per
// translation, plus garbage-collection start/completion lines and a startup
// geometry echo (§6, §4.6 of the core spec). It is a leaf package — it knows nothing about ftl.Address or
// ftl.Geometry so that the core can depend on it without any import cycle.
package tracelog

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus.Logger configured for the plain, timestamp-free,
// one-line-per-event format the trace sink promises: human-readable, not
// parsed programmatically.
type Logger struct {
	log *logrus.Logger
}

// New creates a Logger writing to out.
func New(out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
		DisableQuote:     true,
	})
	return &Logger{log: l}
}

// Mapped records a successful LBA-to-PBA translation:
// "LBA <n> mapped to PBA (pkg, die, plane, block, page)".
func (l *Logger) Mapped(lba uint64, pkg, die, plane, block, page int) {
	l.log.Infof("LBA %d mapped to PBA (%d, %d, %d, %d, %d)", lba, pkg, die, plane, block, page)
}

// Invalid records a translation failure: "Invalid mapping of LBA <n>".
func (l *Logger) Invalid(lba uint64) {
	l.log.Warnf("Invalid mapping of LBA %d", lba)
}

// GCStarted records the start of a garbage-collection cycle, tagged with a
// correlation ID so the start and completion lines of one clean can be
// paired in a log reader. The individual phases are not logged.
func (l *Logger) GCStarted(cycle string, homeBlock int) {
	l.log.WithField("gc_cycle", cycle).Infof("garbage collection started for data block %d", homeBlock)
}

// GCCompleted records the end of a garbage-collection cycle.
func (l *Logger) GCCompleted(cycle string, homeBlock int) {
	l.log.WithField("gc_cycle", cycle).Infof("garbage collection completed for data block %d", homeBlock)
}

// GeometrySummary is the subset of geometry figures worth announcing once at
// startup. It is a plain struct, not the core's Geometry type, so that this
// package stays a leaf dependency.
type GeometrySummary struct {
	TotalBlocks      int
	DataBlocks       int
	ReservedBlocks   int
	TotalPages       int
	BlockSize        int
	Overprovisioning int
}

// LogGeometry echoes the loaded configuration, mirroring the original
// simulator's print_config startup dump.
func (l *Logger) LogGeometry(s GeometrySummary) {
	l.log.Infof(
		"geometry: %s total pages across %s blocks (%s data, %s reserved), overprovisioning %d%%, block size %d pages",
		humanize.Comma(int64(s.TotalPages)),
		humanize.Comma(int64(s.TotalBlocks)),
		humanize.Comma(int64(s.DataBlocks)),
		humanize.Comma(int64(s.ReservedBlocks)),
		s.Overprovisioning,
		s.BlockSize,
	)
}
