package engine

import (
	"fmt"
	"os"

	"github.com/bamsammich/sweep/internal/event"
)

// NormalizeAccess rewrites path's permission bits to target when they
// differ. The change is reported before it is performed. Returns whether a
// chmod happened.
func NormalizeAccess(path string, target os.FileMode, rep Reporter) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	current := info.Mode().Perm()
	if current == target.Perm() {
		return false, nil
	}
	report(rep, event.Event{
		Type:   event.AccessChanged,
		Path:   path,
		Detail: fmt.Sprintf("%03o -> %03o", current, target.Perm()),
	})
	if err := os.Chmod(path, target.Perm()); err != nil {
		return false, fmt.Errorf("chmod %s: %w", path, err)
	}
	return true, nil
}
