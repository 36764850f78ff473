package engine

import (
	"context"
	"io/fs"
	"path/filepath"
)

// ScannerConfig controls scanner behavior.
type ScannerConfig struct {
	SrcRoot string
	DstRoot string
}

// Scanner traverses a source tree sequentially and hands every regular file
// to a visitor, one at a time. Traversal is decoupled from policy: the
// scanner only discovers files and computes their destination mapping.
type Scanner struct {
	cfg ScannerConfig
}

// NewScanner creates a scanner with the given config.
func NewScanner(cfg ScannerConfig) *Scanner {
	return &Scanner{cfg: cfg}
}

// Walk visits every regular file under the source root in lexical order.
// Inaccessible entries are skipped; a non-nil error from fn stops the walk
// and is returned.
func (s *Scanner) Walk(ctx context.Context, fn func(FileTask) error) error {
	return filepath.WalkDir(s.cfg.SrcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(s.cfg.SrcRoot, path)
		if err != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		return fn(FileTask{
			SrcPath: path,
			DstPath: filepath.Join(s.cfg.DstRoot, relPath),
			RelPath: relPath,
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		})
	})
}

// abs resolves path to absolute form, falling back to the input when the
// working directory cannot be determined.
func abs(path string) string {
	a, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return a
}
