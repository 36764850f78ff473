package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bamsammich/sweep/internal/event"
	"github.com/bamsammich/sweep/internal/stats"
)

// Strategy selects how a destination collision is handled.
type Strategy int

const (
	// StrategyNone reports the conflict and leaves both files untouched.
	StrategyNone Strategy = iota
	// StrategyRename copies the source under an indexed name alongside the
	// colliding destination file.
	StrategyRename
	// StrategyReplace keeps or replaces the destination based on recency and
	// byte-for-byte content identity.
	StrategyReplace
)

// Resolver decides what happens when a destination path already exists for
// a file about to be placed.
type Resolver struct {
	strategy Strategy
	rep      Reporter
	stats    *stats.Collector
}

// NewResolver creates a resolver for the given strategy.
func NewResolver(strategy Strategy, rep Reporter, st *stats.Collector) *Resolver {
	return &Resolver{strategy: strategy, rep: rep, stats: st}
}

// Resolve handles a collision at dstPath. srcPath is the live source file
// and stagedPath its staged snapshot. It returns the path the file landed at
// and whether a placement occurred; callers use the latter to decide whether
// move semantics may remove the source.
func (r *Resolver) Resolve(srcPath, stagedPath, dstPath string) (string, bool, error) {
	switch r.strategy {
	case StrategyRename:
		return r.renameAndCopy(srcPath, dstPath)
	case StrategyReplace:
		placed, err := r.replaceByRecency(stagedPath, dstPath)
		return dstPath, placed, err
	default:
		report(r.rep, event.Event{Type: event.ConflictSkipped, Path: srcPath, NewPath: dstPath})
		r.stats.AddConflictsSkipped(1)
		return dstPath, false, nil
	}
}

// renameAndCopy derives the first non-colliding sibling of dstPath and
// copies the source there. The colliding destination file is untouched and
// the source is not removed by this step.
func (r *Resolver) renameAndCopy(srcPath, dstPath string) (string, bool, error) {
	target := uniqueDestination(dstPath)
	report(r.rep, event.Event{Type: event.ConflictRenamed, Path: srcPath, NewPath: target})
	if err := copyPreserve(srcPath, target); err != nil {
		return target, false, err
	}
	r.stats.AddConflictsRenamed(1)
	return target, true, nil
}

// replaceByRecency applies the duplicate decision table: a newer staged copy
// replaces differing content but yields to identical content, while an older
// (or equally old) staged copy replaces identical content but yields to
// differing content. No information is lost when identical content replaces
// the destination, so recency is overridden in that case.
func (r *Resolver) replaceByRecency(stagedPath, dstPath string) (bool, error) {
	stagedInfo, err := os.Stat(stagedPath)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", stagedPath, err)
	}
	dstInfo, err := os.Stat(dstPath)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", dstPath, err)
	}
	identical, err := sameContent(stagedPath, dstPath)
	if err != nil {
		return false, err
	}

	if stagedInfo.ModTime().After(dstInfo.ModTime()) {
		if identical {
			report(r.rep, event.Event{Type: event.DuplicateIgnored, Path: dstPath, Detail: "newer identical"})
			r.stats.AddDuplicatesIgnored(1)
			return false, nil
		}
		report(r.rep, event.Event{Type: event.DuplicateReplaced, Path: dstPath, Detail: "older"})
		if err := r.replace(stagedPath, dstPath); err != nil {
			return false, err
		}
		r.stats.AddDuplicatesReplaced(1)
		return true, nil
	}

	if identical {
		report(r.rep, event.Event{Type: event.DuplicateReplaced, Path: dstPath, Detail: "identical"})
		if err := r.replace(stagedPath, dstPath); err != nil {
			return false, err
		}
		r.stats.AddDuplicatesReplaced(1)
		return true, nil
	}
	report(r.rep, event.Event{Type: event.DuplicateIgnored, Path: dstPath, Detail: "older"})
	r.stats.AddDuplicatesIgnored(1)
	return false, nil
}

func (r *Resolver) replace(stagedPath, dstPath string) error {
	if err := os.Remove(dstPath); err != nil {
		return fmt.Errorf("remove %s: %w", dstPath, err)
	}
	return copyPreserve(stagedPath, dstPath)
}

// uniqueDestination derives the first non-colliding sibling of dstPath by
// appending an index in parentheses before the extension, incrementing from
// any index already present. Indices are tried strictly increasing; gaps are
// not reused.
func uniqueDestination(dstPath string) string {
	dir := filepath.Dir(dstPath)
	name := filepath.Base(dstPath)
	candidate := dstPath
	for {
		if _, err := os.Lstat(candidate); err != nil {
			return candidate
		}
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		base, index := splitIndex(base)
		name = fmt.Sprintf("%s(%d)%s", base, index+1, ext)
		candidate = filepath.Join(dir, name)
	}
}

// splitIndex extracts a trailing (<digits>) group from base. A non-numeric
// group is literal text, not an index: it folds back into the base name and
// the index defaults to zero.
func splitIndex(base string) (string, int) {
	open := strings.LastIndex(base, "(")
	if open < 0 || !strings.HasSuffix(base, ")") {
		return base, 0
	}
	inner := base[open+1 : len(base)-1]
	if inner == "" {
		// Empty parens carry no index and are not preserved.
		return base[:open], 0
	}
	if !allDigits(inner) {
		return base, 0
	}
	n, err := strconv.Atoi(inner)
	if err != nil {
		return base, 0
	}
	return base[:open], n
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
