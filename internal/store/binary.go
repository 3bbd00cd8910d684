package store

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Entry is one stored match location.
type Entry struct {
	Path       string
	LineNumber uint32
}

// Paths names the files written by a Save.
type Paths struct {
	Data  string
	Index string // empty for the text store
}

// Backend is implemented by every store format.
type Backend interface {
	Save(entries []Entry) (Paths, error)
	Load(ordinal uint64) (Entry, error)
	List() ([]Entry, error)
	Exists() bool
}

var (
	_ Backend = Binary{}
	_ Backend = Text{}
)

// Binary stores entries in a data file plus an offset index so that one entry
// can be read back without decoding the others.
type Binary struct {
	DataPath  string
	IndexPath string
}

// Save replaces both files with entries. Each file is written and synced
// atomically; the data file is committed first.
func (s Binary) Save(entries []Entry) (Paths, error) {
	gen, err := newGeneration()
	if err != nil {
		return Paths{}, err
	}

	data := appendDataHeader(nil, dataHeader{version: formatVersion, generation: gen})
	offsets := make([]uint64, 0, len(entries))
	for _, e := range entries {
		data = appendEntry(data, e)
		offsets = append(offsets, uint64(len(data)-dataHeaderSize))
	}
	dataSize := uint64(len(data) - dataHeaderSize)

	index := make([]byte, 0, indexHeaderSize+countSize+offsetSize*len(offsets))
	index = appendIndexHeader(index, indexHeader{version: formatVersion, generation: gen, dataSize: dataSize})
	index = binary.LittleEndian.AppendUint64(index, uint64(len(offsets)))
	for _, off := range offsets {
		index = binary.LittleEndian.AppendUint64(index, off)
	}

	if err := writeFileAtomic(s.DataPath, writeBytes(data)); err != nil {
		return Paths{}, err
	}
	if err := writeFileAtomic(s.IndexPath, writeBytes(index)); err != nil {
		return Paths{}, err
	}
	return Paths{Data: s.DataPath, Index: s.IndexPath}, nil
}

func writeBytes(b []byte) func(w *bufio.Writer) error {
	return func(w *bufio.Writer) error {
		_, err := w.Write(b)
		return err
	}
}

// Load opens the pair, reads one entry and closes it again.
func (s Binary) Load(ordinal uint64) (Entry, error) {
	r, err := Open(s.DataPath, s.IndexPath)
	if err != nil {
		return Entry{}, err
	}
	e, err := r.Read(ordinal)
	return e, errors.Join(err, r.Close())
}

// List reads every stored entry in ordinal order.
func (s Binary) List() ([]Entry, error) {
	r, err := Open(s.DataPath, s.IndexPath)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, r.Count())
	for i := uint64(0); i < r.Count(); i++ {
		e, err := r.Read(i)
		if err != nil {
			return nil, errors.Join(err, r.Close())
		}
		entries = append(entries, e)
	}
	return entries, r.Close()
}

// Reader gives random access to a saved pair. Both files are memory mapped.
type Reader struct {
	dataPath string
	data     *mapping
	index    *mapping
	count    uint64
	offsets  []byte // count little endian u64 values
	closed   bool
}

// Open maps a data/index pair and checks that they were written together.
func Open(dataPath, indexPath string) (*Reader, error) {
	index, err := mapFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("open index file %s: %w", indexPath, err)
	}
	data, err := mapFile(dataPath)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open data file %s: %w", dataPath, err), index.Close())
	}

	r := &Reader{dataPath: dataPath, data: data, index: index}
	if err := r.validate(indexPath); err != nil {
		return nil, errors.Join(err, r.Close())
	}
	return r, nil
}

func (r *Reader) validate(indexPath string) error {
	ih, err := parseIndexHeader(r.index.data)
	if err != nil {
		return fmt.Errorf("%s: %w", indexPath, err)
	}
	dh, err := parseDataHeader(r.data.data)
	if err != nil {
		return fmt.Errorf("%s: %w", r.dataPath, err)
	}
	if ih.generation != dh.generation {
		return fmt.Errorf("%w: %s and %s", ErrMismatchedPair, r.dataPath, indexPath)
	}

	body := r.index.data[indexHeaderSize:]
	if len(body) < countSize {
		return fmt.Errorf("%w: %s has no record count", ErrCorrupt, indexPath)
	}
	count := binary.LittleEndian.Uint64(body[:countSize])
	offsets := body[countSize:]
	if uint64(len(offsets)) != count*offsetSize || count > uint64(len(offsets)) {
		return fmt.Errorf("%w: %s holds %d offset bytes for %d records", ErrCorrupt, indexPath, len(offsets), count)
	}

	payload := uint64(len(r.data.data) - dataHeaderSize)
	if payload != ih.dataSize {
		return fmt.Errorf("%w: %s has %d bytes of records, index expects %d", ErrCorrupt, r.dataPath, payload, ih.dataSize)
	}
	if count > 0 {
		if last := binary.LittleEndian.Uint64(offsets[(count-1)*offsetSize:]); last != payload {
			return fmt.Errorf("%w: last offset %d, data holds %d bytes", ErrCorrupt, last, payload)
		}
	}

	r.count = count
	r.offsets = offsets
	return nil
}

// Count returns the number of stored entries.
func (r *Reader) Count() uint64 {
	return r.count
}

func (r *Reader) offset(i uint64) uint64 {
	return binary.LittleEndian.Uint64(r.offsets[i*offsetSize:])
}

// Read decodes the entry with the given ordinal.
func (r *Reader) Read(ordinal uint64) (Entry, error) {
	if r.closed {
		return Entry{}, ErrClosed
	}
	if ordinal >= r.count {
		return Entry{}, &IndexOutOfRangeError{Requested: ordinal, Count: r.count}
	}

	var start uint64
	if ordinal > 0 {
		start = r.offset(ordinal - 1)
	}
	end := r.offset(ordinal)
	payload := uint64(len(r.data.data) - dataHeaderSize)
	if start >= end || end > payload {
		return Entry{}, fmt.Errorf("%w: %s record %d spans [%d, %d)", ErrCorrupt, r.dataPath, ordinal, start, end)
	}

	e, err := decodeEntry(r.data.data[dataHeaderSize+start : dataHeaderSize+end])
	if err != nil {
		return Entry{}, fmt.Errorf("%s record %d: %w", r.dataPath, ordinal, err)
	}
	return e, nil
}

// Close unmaps both files. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return errors.Join(r.data.Close(), r.index.Close())
}

// Exists reports whether both files of the pair are present.
func (s Binary) Exists() bool {
	return fileExists(s.DataPath) && fileExists(s.IndexPath)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
