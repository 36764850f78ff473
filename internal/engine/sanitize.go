package engine

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bamsammich/sweep/internal/event"
)

// Sanitize rewrites path's base name, replacing every occurrence of a
// character in tricky with substitute, and attempts the rename on disk.
// Rename failures are logged and swallowed; the attempted path is returned
// either way and callers must treat it as the path of record. When the base
// name contains no tricky character the path is returned unchanged.
func Sanitize(path, tricky, substitute string, rep Reporter) string {
	base := filepath.Base(path)
	if !strings.ContainsAny(base, tricky) {
		return path
	}

	sub, _ := utf8.DecodeRuneInString(substitute)
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(tricky, r) {
			return sub
		}
		return r
	}, base)

	newPath := filepath.Join(filepath.Dir(path), clean)
	report(rep, event.Event{Type: event.NameSanitized, Path: path, NewPath: newPath})
	if err := os.Rename(path, newPath); err != nil {
		// Best-effort: the file may not exist yet (destination side) or the
		// rename target may be unwritable. The pipeline continues on the
		// attempted path regardless.
		slog.Debug("sanitize rename failed", "path", path, "error", err)
	}
	return newPath
}
