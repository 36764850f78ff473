package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks reconciliation counters. The engine is sequential, but
// counters stay atomic so reporters on other goroutines can read snapshots
// safely.
type Collector struct {
	filesScanned       atomic.Int64
	filesCopied        atomic.Int64
	filesFailed        atomic.Int64
	bytesCopied        atomic.Int64
	emptyRemoved       atomic.Int64
	tempRemoved        atomic.Int64
	namesSanitized     atomic.Int64
	accessChanged      atomic.Int64
	conflictsRenamed   atomic.Int64
	duplicatesReplaced atomic.Int64
	duplicatesIgnored  atomic.Int64
	conflictsSkipped   atomic.Int64
	sourcesRemoved     atomic.Int64
	filesVerified      atomic.Int64
	verifyFailed       atomic.Int64
	startTime          time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

func (c *Collector) AddFilesScanned(n int64)       { c.filesScanned.Add(n) }
func (c *Collector) AddFilesCopied(n int64)        { c.filesCopied.Add(n) }
func (c *Collector) AddFilesFailed(n int64)        { c.filesFailed.Add(n) }
func (c *Collector) AddBytesCopied(n int64)        { c.bytesCopied.Add(n) }
func (c *Collector) AddEmptyRemoved(n int64)       { c.emptyRemoved.Add(n) }
func (c *Collector) AddTempRemoved(n int64)        { c.tempRemoved.Add(n) }
func (c *Collector) AddNamesSanitized(n int64)     { c.namesSanitized.Add(n) }
func (c *Collector) AddAccessChanged(n int64)      { c.accessChanged.Add(n) }
func (c *Collector) AddConflictsRenamed(n int64)   { c.conflictsRenamed.Add(n) }
func (c *Collector) AddDuplicatesReplaced(n int64) { c.duplicatesReplaced.Add(n) }
func (c *Collector) AddDuplicatesIgnored(n int64)  { c.duplicatesIgnored.Add(n) }
func (c *Collector) AddConflictsSkipped(n int64)   { c.conflictsSkipped.Add(n) }
func (c *Collector) AddSourcesRemoved(n int64)     { c.sourcesRemoved.Add(n) }
func (c *Collector) AddFilesVerified(n int64)      { c.filesVerified.Add(n) }
func (c *Collector) AddVerifyFailed(n int64)       { c.verifyFailed.Add(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesScanned       int64
	FilesCopied        int64
	FilesFailed        int64
	BytesCopied        int64
	EmptyRemoved       int64
	TempRemoved        int64
	NamesSanitized     int64
	AccessChanged      int64
	ConflictsRenamed   int64
	DuplicatesReplaced int64
	DuplicatesIgnored  int64
	ConflictsSkipped   int64
	SourcesRemoved     int64
	FilesVerified      int64
	VerifyFailed       int64
	Elapsed            time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesScanned:       c.filesScanned.Load(),
		FilesCopied:        c.filesCopied.Load(),
		FilesFailed:        c.filesFailed.Load(),
		BytesCopied:        c.bytesCopied.Load(),
		EmptyRemoved:       c.emptyRemoved.Load(),
		TempRemoved:        c.tempRemoved.Load(),
		NamesSanitized:     c.namesSanitized.Load(),
		AccessChanged:      c.accessChanged.Load(),
		ConflictsRenamed:   c.conflictsRenamed.Load(),
		DuplicatesReplaced: c.duplicatesReplaced.Load(),
		DuplicatesIgnored:  c.duplicatesIgnored.Load(),
		ConflictsSkipped:   c.conflictsSkipped.Load(),
		SourcesRemoved:     c.sourcesRemoved.Load(),
		FilesVerified:      c.filesVerified.Load(),
		VerifyFailed:       c.verifyFailed.Load(),
		Elapsed:            c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// Placed returns the total number of files that landed in the destination.
func (s Snapshot) Placed() int64 {
	return s.FilesCopied + s.ConflictsRenamed + s.DuplicatesReplaced
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"scanned=%d copied=%d renamed=%d replaced=%d skipped=%d removed=%d failed=%d bytes=%d",
		s.FilesScanned, s.FilesCopied, s.ConflictsRenamed, s.DuplicatesReplaced,
		s.ConflictsSkipped+s.DuplicatesIgnored, s.EmptyRemoved+s.TempRemoved,
		s.FilesFailed, s.BytesCopied,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
