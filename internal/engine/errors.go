package engine

import "fmt"

// ResourceError reports a failure to create a directory the run cannot
// proceed without (the staging area or a destination parent). It aborts the
// whole run, unlike per-file I/O errors which only skip the file concerned.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("create %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
