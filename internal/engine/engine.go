package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bamsammich/sweep/internal/event"
	"github.com/bamsammich/sweep/internal/stats"
)

// Config describes a reconciliation run. It is built once by the caller and
// passed by value; no component reads process-wide state.
type Config struct {
	Sources []string // source roots, resolved to absolute form before the walk
	Dst     string   // destination root

	RemoveEmpty bool
	TempPattern *regexp.Regexp // nil disables the temporary-file filter

	// Sanitization runs only when both are non-empty. TrickySubstitute is a
	// single character, validated by the configuration loader.
	TrickyLetters    string
	TrickySubstitute string

	Access          os.FileMode
	NormalizeAccess bool

	Strategy Strategy
	Move     bool
	Verify   bool

	// Stager owns the staging directory; when nil, Run creates one and
	// releases it before returning.
	Stager   *Stager
	Reporter Reporter
	Stats    *stats.Collector
}

// Result is the outcome of a reconciliation run. Err is set only for fatal
// conditions; per-file failures are counted in Stats and recovered.
type Result struct {
	Stats stats.Snapshot
	Err   error
}

// Run executes a reconciliation run, blocking until every source tree has
// been walked or the context is cancelled. Files are processed strictly one
// at a time; a failure on one file never aborts the walk.
func Run(ctx context.Context, cfg Config) Result {
	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}

	stager := cfg.Stager
	if stager == nil {
		var err error
		stager, err = NewStager(DefaultStagingPath())
		if err != nil {
			return Result{Stats: collector.Snapshot(), Err: err}
		}
		defer stager.Release()
	}

	d := &driver{
		cfg:      cfg,
		stager:   stager,
		rep:      cfg.Reporter,
		stats:    collector,
		resolver: NewResolver(cfg.Strategy, cfg.Reporter, collector),
	}

	dst := abs(cfg.Dst)
	for _, src := range cfg.Sources {
		scanner := NewScanner(ScannerConfig{SrcRoot: abs(src), DstRoot: dst})
		if err := scanner.Walk(ctx, d.process); err != nil {
			return Result{Stats: collector.Snapshot(), Err: err}
		}
	}

	return Result{Stats: collector.Snapshot()}
}

// driver threads each discovered file through the fixed pipeline: staleness
// filters, sanitization, permission normalization, staging, then placement
// with conflict resolution.
type driver struct {
	cfg      Config
	stager   *Stager
	rep      Reporter
	stats    *stats.Collector
	resolver *Resolver
}

// process wraps reconcile with per-file error recovery. Only resource
// errors (destination directory creation) abort the walk.
func (d *driver) process(task FileTask) error {
	d.stats.AddFilesScanned(1)

	if err := d.reconcile(task); err != nil {
		var resErr *ResourceError
		if errors.As(err, &resErr) {
			return err
		}
		report(d.rep, event.Event{Type: event.FileFailed, Path: task.SrcPath, Error: err})
		d.stats.AddFilesFailed(1)
	}
	return nil
}

func (d *driver) reconcile(task FileTask) error {
	cfg := d.cfg

	// Stale destination files are cleared before the source-side checks so
	// their removal does not depend on whether the source copy proceeds.
	// A missing destination file is expected for first-time copies.
	if cfg.RemoveEmpty {
		if removed, err := RemoveIfEmpty(task.DstPath, d.rep); err != nil {
			slog.Debug("empty check on destination skipped", "path", task.DstPath, "error", err)
		} else if removed {
			d.stats.AddEmptyRemoved(1)
		}
		removed, err := RemoveIfEmpty(task.SrcPath, d.rep)
		if err != nil {
			return err
		}
		if removed {
			d.stats.AddEmptyRemoved(1)
			return nil
		}
	}

	if cfg.TempPattern != nil {
		if removed, err := RemoveIfTemporary(task.DstPath, cfg.TempPattern, d.rep); err != nil {
			slog.Debug("temporary check on destination skipped", "path", task.DstPath, "error", err)
		} else if removed {
			d.stats.AddTempRemoved(1)
		}
		removed, err := RemoveIfTemporary(task.SrcPath, cfg.TempPattern, d.rep)
		if err != nil {
			return err
		}
		if removed {
			d.stats.AddTempRemoved(1)
			return nil
		}
	}

	if cfg.TrickyLetters != "" && cfg.TrickySubstitute != "" {
		// The destination rewrite is attempted first; it is mostly a path
		// computation since the destination file may not exist yet.
		task.DstPath = Sanitize(task.DstPath, cfg.TrickyLetters, cfg.TrickySubstitute, d.rep)
		newSrc := Sanitize(task.SrcPath, cfg.TrickyLetters, cfg.TrickySubstitute, d.rep)
		if newSrc != task.SrcPath {
			task.SrcPath = newSrc
			d.stats.AddNamesSanitized(1)
			// The sanitized relative path is authoritative from here on.
			task.RelPath = filepath.Join(filepath.Dir(task.RelPath), filepath.Base(task.DstPath))
		}
	}

	if cfg.NormalizeAccess {
		// Destination side is best-effort; the file may not exist.
		if changed, err := NormalizeAccess(task.DstPath, cfg.Access, d.rep); err != nil {
			slog.Debug("access normalization on destination skipped", "path", task.DstPath, "error", err)
		} else if changed {
			d.stats.AddAccessChanged(1)
		}
		// A source-side failure means the source is unusable; skip the file.
		changed, err := NormalizeAccess(task.SrcPath, cfg.Access, d.rep)
		if err != nil {
			return err
		}
		if changed {
			d.stats.AddAccessChanged(1)
		}
	}

	stagedPath, err := d.stager.Stage(task.RelPath, task.SrcPath)
	if err != nil {
		return err
	}

	placed := false
	finalPath := task.DstPath
	// Stat follows symlinks: a dangling symlink at the destination is an
	// absent file, not a conflict.
	if _, statErr := os.Stat(task.DstPath); statErr == nil {
		finalPath, placed, err = d.resolver.Resolve(task.SrcPath, stagedPath, task.DstPath)
		if err != nil {
			return err
		}
	} else {
		dstDir := filepath.Dir(task.DstPath)
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			return &ResourceError{Path: dstDir, Err: err}
		}
		report(d.rep, event.Event{
			Type: event.FileCopied, Path: task.SrcPath, NewPath: task.DstPath, Size: task.Size,
		})
		if err := copyPreserve(task.SrcPath, task.DstPath); err != nil {
			return err
		}
		d.stats.AddFilesCopied(1)
		d.stats.AddBytesCopied(task.Size)
		placed = true
	}

	if placed && cfg.Verify {
		ok, err := d.verifyPlacement(stagedPath, finalPath)
		if err != nil {
			return err
		}
		placed = ok
	}

	if cfg.Move && placed {
		report(d.rep, event.Event{Type: event.SourceRemoved, Path: task.SrcPath})
		if err := os.Remove(task.SrcPath); err != nil {
			return fmt.Errorf("remove source %s: %w", task.SrcPath, err)
		}
		d.stats.AddSourcesRemoved(1)
	}

	return nil
}

// verifyPlacement compares the placed file against the staged snapshot by
// BLAKE3 digest. A mismatch marks the placement as failed, which also blocks
// source removal under move semantics.
func (d *driver) verifyPlacement(stagedPath, placedPath string) (bool, error) {
	want, err := HashFile(stagedPath)
	if err != nil {
		return false, err
	}
	got, err := HashFile(placedPath)
	if err != nil {
		return false, err
	}
	if want != got {
		report(d.rep, event.Event{Type: event.VerifyFailed, Path: placedPath, Detail: got})
		d.stats.AddVerifyFailed(1)
		return false, nil
	}
	d.stats.AddFilesVerified(1)
	return true, nil
}
