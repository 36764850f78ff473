package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Stager owns the single process-scoped staging directory. It mirrors the
// relative-path structure of the inputs and must never outlive the process:
// Release runs on every exit path, including faults and termination signals.
type Stager struct {
	root string
}

// DefaultStagingPath returns a fresh staging directory path under the system
// temp dir.
func DefaultStagingPath() string {
	return filepath.Join(os.TempDir(), "sweep-"+uuid.NewString())
}

// NewStager creates basePath's parent and the staging directory itself.
// If either create step fails nothing exists to clean up and the returned
// *ResourceError is fatal to the run.
func NewStager(basePath string) (*Stager, error) {
	if err := os.MkdirAll(filepath.Dir(basePath), 0o755); err != nil {
		return nil, &ResourceError{Path: filepath.Dir(basePath), Err: err}
	}
	if err := os.Mkdir(basePath, 0o700); err != nil {
		return nil, &ResourceError{Path: basePath, Err: err}
	}
	return &Stager{root: basePath}, nil
}

// Root returns the staging directory path.
func (s *Stager) Root() string { return s.root }

// Stage snapshots srcPath's content and modification time into the staging
// tree under relPath, creating intermediate directories as needed. A failure
// here is a skip-this-file condition for the driver, not a fatal error.
func (s *Stager) Stage(relPath, srcPath string) (string, error) {
	dst := filepath.Join(s.root, relPath)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("stage dir for %s: %w", relPath, err)
	}
	if err := copyPreserve(srcPath, dst); err != nil {
		return "", fmt.Errorf("stage %s: %w", srcPath, err)
	}
	return dst, nil
}

// Release removes the staging tree. It is idempotent: calling it when the
// tree was already removed (or never populated) is safe.
func (s *Stager) Release() {
	if s == nil || s.root == "" {
		return
	}
	if err := os.RemoveAll(s.root); err != nil {
		slog.Debug("staging cleanup failed", "path", s.root, "error", err)
	}
}
