//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// CopyContents copies the whole of srcPath into dst, preferring
// copy_file_range and falling through to read/write on unsupported
// filesystems or cross-device copies.
func CopyContents(dst *os.File, srcPath string, size int64) (CopyResult, error) {
	result, err := copyFileRange(dst, srcPath, size)
	if err == nil {
		return result, nil
	}
	if !isFallbackErr(err) {
		return result, err
	}
	return copyReadWrite(dst, srcPath)
}

func copyFileRange(dst *os.File, srcPath string, size int64) (CopyResult, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer src.Close()

	remaining := size
	var roff, woff int64
	var totalWritten int64
	for remaining > 0 {
		n, err := unix.CopyFileRange(int(src.Fd()), &roff, int(dst.Fd()), &woff, int(remaining), 0)
		if err != nil {
			if totalWritten == 0 {
				return CopyResult{}, err
			}
			return CopyResult{BytesWritten: totalWritten, Method: CopyFileRange}, err
		}
		if n == 0 {
			break
		}
		remaining -= int64(n)
		totalWritten += int64(n)
	}

	return CopyResult{BytesWritten: totalWritten, Method: CopyFileRange}, nil
}

// isFallbackErr returns true if err should trigger a fallback to read/write.
func isFallbackErr(err error) bool {
	switch err {
	case unix.ENOSYS, unix.EXDEV, unix.EINVAL, unix.ENOTSUP:
		return true
	}
	if e, ok := err.(*os.PathError); ok {
		return isFallbackErr(e.Err)
	}
	return false
}
