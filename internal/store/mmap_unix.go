//go:build unix

package store

import (
	"os"

	"golang.org/x/sys/unix"
)

func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	// Lookups touch one small window per invocation.
	_ = unix.Madvise(data, unix.MADV_RANDOM)
	return data, unix.Munmap, nil
}
