package ui

import (
	"fmt"
	"io"

	"github.com/bamsammich/sweep/internal/event"
)

// Config controls reporter output.
type Config struct {
	Writer    io.Writer // action lines
	ErrWriter io.Writer // failures
	Quiet     bool      // suppress everything except failures
}

// Plain prints one line per reconciliation action. Failures always go to the
// error writer, even in quiet mode, so destructive outcomes stay auditable.
type Plain struct {
	w     io.Writer
	errW  io.Writer
	quiet bool
}

// NewReporter creates a plain reporter.
func NewReporter(cfg Config) *Plain {
	return &Plain{w: cfg.Writer, errW: cfg.ErrWriter, quiet: cfg.Quiet}
}

func (p *Plain) Report(ev event.Event) {
	switch ev.Type {
	case event.FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.errW, "failed: %s: %s\n", ev.Path, errMsg)
		return
	case event.VerifyFailed:
		fmt.Fprintf(p.errW, "verify mismatch: %s\n", ev.Path)
		return
	}

	if p.quiet {
		return
	}

	switch ev.Type {
	case event.EmptyRemoved:
		fmt.Fprintf(p.w, "removing empty file: %s\n", ev.Path)
	case event.TemporaryRemoved:
		fmt.Fprintf(p.w, "removing temporary file: %s\n", ev.Path)
	case event.NameSanitized:
		fmt.Fprintf(p.w, "replacing tricky letters: %s -> %s\n", ev.Path, ev.NewPath)
	case event.AccessChanged:
		fmt.Fprintf(p.w, "modifying access (%s): %s\n", ev.Detail, ev.Path)
	case event.FileCopied:
		fmt.Fprintf(p.w, "copying %s -> %s\n", ev.Path, ev.NewPath)
	case event.ConflictRenamed:
		fmt.Fprintf(p.w, "renaming to avoid conflict: %s -> %s\n", ev.Path, ev.NewPath)
	case event.DuplicateReplaced:
		fmt.Fprintf(p.w, "replacing duplicate (%s): %s\n", ev.Detail, ev.Path)
	case event.DuplicateIgnored:
		fmt.Fprintf(p.w, "ignoring duplicate (%s): %s\n", ev.Detail, ev.Path)
	case event.ConflictSkipped:
		fmt.Fprintf(p.w, "conflict detected, not copied: %s -> %s\n", ev.Path, ev.NewPath)
	case event.SourceRemoved:
		fmt.Fprintf(p.w, "removing source: %s\n", ev.Path)
	}
}
