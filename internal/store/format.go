package store

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// On-disk layout, all integers little endian.
//
// Data file:
//
//	header  magic "RGVGDATA" | version u32 | reserved u32 | generation u64
//	records (path_len u64 | path bytes | line u32)*
//
// Index file:
//
//	header  magic "RGVGIDX\x00" | version u32 | reserved u32 | generation u64 | data_size u64
//	offsets count u64 | (end_offset u64)*
//
// Records and offsets use the same layout as a bincode encoded (String, u32)
// tuple and Vec<u64>. end_offset is relative to the first record.

const formatVersion uint32 = 1

var (
	dataMagic  = [8]byte{'R', 'G', 'V', 'G', 'D', 'A', 'T', 'A'}
	indexMagic = [8]byte{'R', 'G', 'V', 'G', 'I', 'D', 'X', 0}
)

const (
	dataHeaderSize  = 8 + 4 + 4 + 8
	indexHeaderSize = dataHeaderSize + 8
	countSize       = 8
	offsetSize      = 8
	// minRecordSize is an empty path and its line number.
	minRecordSize = 8 + 4
)

type dataHeader struct {
	version    uint32
	generation uint64
}

type indexHeader struct {
	version    uint32
	generation uint64
	dataSize   uint64
}

func newGeneration() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("generate store generation: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func appendDataHeader(b []byte, h dataHeader) []byte {
	b = append(b, dataMagic[:]...)
	b = binary.LittleEndian.AppendUint32(b, h.version)
	b = binary.LittleEndian.AppendUint32(b, 0)
	return binary.LittleEndian.AppendUint64(b, h.generation)
}

func appendIndexHeader(b []byte, h indexHeader) []byte {
	b = append(b, indexMagic[:]...)
	b = binary.LittleEndian.AppendUint32(b, h.version)
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint64(b, h.generation)
	return binary.LittleEndian.AppendUint64(b, h.dataSize)
}

func parseDataHeader(b []byte) (dataHeader, error) {
	if len(b) < dataHeaderSize || !bytes.Equal(b[:8], dataMagic[:]) {
		return dataHeader{}, fmt.Errorf("%w: bad data header", ErrCorrupt)
	}
	h := dataHeader{
		version:    binary.LittleEndian.Uint32(b[8:12]),
		generation: binary.LittleEndian.Uint64(b[16:24]),
	}
	if h.version != formatVersion {
		return dataHeader{}, fmt.Errorf("%w: data version %d", ErrUnsupportedVersion, h.version)
	}
	return h, nil
}

func parseIndexHeader(b []byte) (indexHeader, error) {
	if len(b) < indexHeaderSize || !bytes.Equal(b[:8], indexMagic[:]) {
		return indexHeader{}, fmt.Errorf("%w: bad index header", ErrCorrupt)
	}
	h := indexHeader{
		version:    binary.LittleEndian.Uint32(b[8:12]),
		generation: binary.LittleEndian.Uint64(b[16:24]),
		dataSize:   binary.LittleEndian.Uint64(b[24:32]),
	}
	if h.version != formatVersion {
		return indexHeader{}, fmt.Errorf("%w: index version %d", ErrUnsupportedVersion, h.version)
	}
	return h, nil
}

// appendEntry encodes e as a (String, u32) tuple.
func appendEntry(b []byte, e Entry) []byte {
	b = binary.LittleEndian.AppendUint64(b, uint64(len(e.Path)))
	b = append(b, e.Path...)
	return binary.LittleEndian.AppendUint32(b, e.LineNumber)
}

// decodeEntry decodes exactly one record from b.
func decodeEntry(b []byte) (Entry, error) {
	if len(b) < minRecordSize {
		return Entry{}, fmt.Errorf("%w: record of %d bytes", ErrCorrupt, len(b))
	}
	n := binary.LittleEndian.Uint64(b[:8])
	if n != uint64(len(b)-minRecordSize) {
		return Entry{}, fmt.Errorf("%w: record path length %d does not fit %d bytes", ErrCorrupt, n, len(b))
	}
	path := string(b[8 : 8+n])
	line := binary.LittleEndian.Uint32(b[8+n:])
	return Entry{Path: path, LineNumber: line}, nil
}
