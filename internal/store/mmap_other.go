//go:build !unix

package store

import (
	"io"
	"os"
)

// osMap reads the file into memory where mmap is not available.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, func([]byte) error { return nil }, nil
}
