package engine

import (
	"os"
	"time"
)

// FileTask describes a single discovered source file and its mapped paths.
// The relative path is identical across the source, destination and staging
// mappings when the task is created; sanitization may rewrite it
// mid-pipeline, after which the new path is authoritative for every later
// step.
type FileTask struct {
	SrcPath string // absolute path under the source root
	DstPath string // destination root + relative path
	RelPath string // path relative to the matched source root
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
}
