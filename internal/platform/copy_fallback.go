//go:build !linux

package platform

import "os"

// CopyContents falls back to read/write on platforms without a native
// whole-file copy syscall binding.
func CopyContents(dst *os.File, srcPath string, _ int64) (CopyResult, error) {
	return copyReadWrite(dst, srcPath)
}
