package platform

import (
	"io"
	"os"
	"sync"
)

const bufferSize = 1 << 20 // 1 MiB

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

// copyReadWrite copies the whole of srcPath into dst with a pooled buffer.
func copyReadWrite(dst *os.File, srcPath string) (CopyResult, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer src.Close()

	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)

	n, err := io.CopyBuffer(dst, src, *bufp)
	return CopyResult{BytesWritten: n, Method: ReadWrite}, err
}
