package store

import (
	"fmt"
	"os"
)

// mapping is a read-only view of a whole file.
type mapping struct {
	data  []byte
	unmap func([]byte) error
}

// mapFile maps path into memory. Empty files map to a nil slice.
func mapFile(path string) (*mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return &mapping{}, nil
	}
	if size < 0 || int64(int(size)) != size {
		return nil, fmt.Errorf("%w: %s has invalid size %d", ErrCorrupt, path, size)
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}
	return &mapping{data: data, unmap: unmap}, nil
}

func (m *mapping) Close() error {
	if m == nil || m.data == nil || m.unmap == nil {
		return nil
	}
	data := m.data
	m.data = nil
	return m.unmap(data)
}
