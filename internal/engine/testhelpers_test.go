package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bamsammich/sweep/internal/event"
)

// recorder captures events for assertions.
type recorder struct {
	events []event.Event
}

func (r *recorder) Report(ev event.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) types() []event.Type {
	out := make([]event.Type, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func (r *recorder) has(t event.Type) bool {
	for _, ev := range r.events {
		if ev.Type == t {
			return true
		}
	}
	return false
}

// writeFile creates a file with the given content, creating parents.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// touch sets the file's modification time.
func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, time.Time{}, mtime))
}
