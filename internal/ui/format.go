package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bamsammich/sweep/internal/stats"
)

// Summary renders a one-line run summary from a stats snapshot. Zero
// counters for optional features are omitted.
func Summary(snap stats.Snapshot) string {
	parts := []string{
		fmt.Sprintf("%d scanned", snap.FilesScanned),
		fmt.Sprintf("%d placed (%s)", snap.Placed(), stats.FormatBytes(snap.BytesCopied)),
	}
	if n := snap.EmptyRemoved + snap.TempRemoved; n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	if snap.NamesSanitized > 0 {
		parts = append(parts, fmt.Sprintf("%d renamed", snap.NamesSanitized))
	}
	if n := snap.ConflictsSkipped + snap.DuplicatesIgnored; n > 0 {
		parts = append(parts, fmt.Sprintf("%d conflicts skipped", n))
	}
	if snap.SourcesRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d moved", snap.SourcesRemoved))
	}
	if snap.FilesVerified+snap.VerifyFailed > 0 {
		parts = append(parts, fmt.Sprintf("%d verified, %d mismatched", snap.FilesVerified, snap.VerifyFailed))
	}
	if snap.FilesFailed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", snap.FilesFailed))
	}
	parts = append(parts, fmt.Sprintf("in %s", snap.Elapsed.Round(time.Millisecond)))
	return strings.Join(parts, ", ")
}
