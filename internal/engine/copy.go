package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bamsammich/sweep/internal/platform"
)

// copyPreserve copies src's content to dst, carrying over the permission
// bits and modification time. dst is truncated if it already exists.
func copyPreserve(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := platform.CopyContents(out, src, info.Size()); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	// The create mode above is subject to umask; set the bits explicitly.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, time.Time{}, info.ModTime()); err != nil {
		return fmt.Errorf("set mtime %s: %w", dst, err)
	}
	return nil
}

// sameContent reports whether two files are byte-for-byte identical. This is
// a full content comparison, never a hash or metadata shortcut.
func sameContent(a, b string) (bool, error) {
	ia, err := os.Stat(a)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", a, err)
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", b, err)
	}
	if ia.Size() != ib.Size() {
		return false, nil
	}

	fa, err := os.Open(a)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", a, err)
	}
	defer fa.Close()
	fb, err := os.Open(b)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", b, err)
	}
	defer fb.Close()

	bufA := make([]byte, 32*1024)
	bufB := make([]byte, 32*1024)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		if errA == io.EOF || errA == io.ErrUnexpectedEOF {
			return errB == io.EOF || errB == io.ErrUnexpectedEOF, nil
		}
		if errA != nil {
			return false, fmt.Errorf("read %s: %w", a, errA)
		}
		if errB != nil {
			return false, fmt.Errorf("read %s: %w", b, errB)
		}
	}
}
