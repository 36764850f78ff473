package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/sweep/internal/stats"
)

func TestSummaryMinimal(t *testing.T) {
	got := Summary(stats.Snapshot{
		FilesScanned: 3,
		FilesCopied:  3,
		BytesCopied:  1024,
		Elapsed:      42 * time.Millisecond,
	})
	assert.Equal(t, "3 scanned, 3 placed (1.0 KiB), in 42ms", got)
}

func TestSummaryIncludesOptionalCounters(t *testing.T) {
	got := Summary(stats.Snapshot{
		FilesScanned:       10,
		FilesCopied:        5,
		ConflictsRenamed:   1,
		DuplicatesReplaced: 1,
		BytesCopied:        2048,
		EmptyRemoved:       1,
		TempRemoved:        1,
		NamesSanitized:     2,
		ConflictsSkipped:   1,
		DuplicatesIgnored:  1,
		SourcesRemoved:     7,
		FilesVerified:      7,
		FilesFailed:        1,
		Elapsed:            time.Second,
	})
	assert.Equal(t,
		"10 scanned, 7 placed (2.0 KiB), 2 removed, 2 renamed, 2 conflicts skipped, "+
			"7 moved, 7 verified, 0 mismatched, 1 failed, in 1s", got)
}

func TestSummaryOmitsZeroOptionalCounters(t *testing.T) {
	got := Summary(stats.Snapshot{Elapsed: time.Millisecond})
	assert.Equal(t, "0 scanned, 0 placed (0 B), in 1ms", got)
}
