package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bamsammich/sweep/internal/event"
)

// RemoveIfEmpty deletes the file at path when its size is exactly zero.
// The deletion is reported before it is performed. Returns whether the file
// was removed.
func RemoveIfEmpty(path string, rep Reporter) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() != 0 {
		return false, nil
	}
	report(rep, event.Event{Type: event.EmptyRemoved, Path: path})
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	return true, nil
}

// RemoveIfTemporary deletes the file at path when its base name matches
// pattern anywhere. The deletion is reported before it is performed.
// Returns whether the file was removed.
func RemoveIfTemporary(path string, pattern *regexp.Regexp, rep Reporter) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !pattern.MatchString(filepath.Base(path)) {
		return false, nil
	}
	report(rep, event.Event{Type: event.TemporaryRemoved, Path: path})
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	return true, nil
}
