package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{
			Path:       fmt.Sprintf("src/pkg%d/file_%d.go", i%7, i),
			LineNumber: uint32(i*13 + 1),
		}
	}
	return entries
}

func newBinary(t *testing.T) Binary {
	t.Helper()
	dir := t.TempDir()
	return Binary{
		DataPath:  filepath.Join(dir, "cgvg.match"),
		IndexPath: filepath.Join(dir, "cgvg.idx"),
	}
}

func TestBinary_RoundTrip(t *testing.T) {
	s := newBinary(t)
	entries := sampleEntries(100)
	entries[3].Path = ""
	entries[4].Path = "unicodé/パス.go"
	entries[5].LineNumber = ^uint32(0)

	paths, err := s.Save(entries)
	require.NoError(t, err)
	assert.Equal(t, Paths{Data: s.DataPath, Index: s.IndexPath}, paths)

	r, err := Open(s.DataPath, s.IndexPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	require.Equal(t, uint64(len(entries)), r.Count())
	for i, want := range entries {
		got, err := r.Read(uint64(i))
		require.NoError(t, err, "ordinal %d", i)
		assert.Equal(t, want, got, "ordinal %d", i)
	}

	_, err = r.Read(uint64(len(entries)))
	var oob *IndexOutOfRangeError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, uint64(len(entries)), oob.Requested)
	assert.Equal(t, uint64(len(entries)), oob.Count)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBinary_LoadAndList(t *testing.T) {
	s := newBinary(t)
	entries := sampleEntries(5)
	_, err := s.Save(entries)
	require.NoError(t, err)

	got, err := s.Load(2)
	require.NoError(t, err)
	assert.Equal(t, entries[2], got)

	all, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, entries, all)

	_, err = s.Load(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.True(t, s.Exists())
}

func TestBinary_Empty(t *testing.T) {
	s := newBinary(t)
	_, err := s.Save(nil)
	require.NoError(t, err)

	r, err := Open(s.DataPath, s.IndexPath)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, uint64(0), r.Count())

	_, err = r.Read(0)
	var oob *IndexOutOfRangeError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, IndexOutOfRangeError{Requested: 0, Count: 0}, *oob)
}

func TestBinary_RecordLayout(t *testing.T) {
	s := newBinary(t)
	_, err := s.Save([]Entry{{Path: "ab", LineNumber: 7}, {Path: "c", LineNumber: 9}})
	require.NoError(t, err)

	data, err := os.ReadFile(s.DataPath)
	require.NoError(t, err)
	body := data[dataHeaderSize:]
	want := []byte{
		2, 0, 0, 0, 0, 0, 0, 0, 'a', 'b', 7, 0, 0, 0,
		1, 0, 0, 0, 0, 0, 0, 0, 'c', 9, 0, 0, 0,
	}
	assert.Equal(t, want, body)

	index, err := os.ReadFile(s.IndexPath)
	require.NoError(t, err)
	offsets := index[indexHeaderSize:]
	require.Len(t, offsets, 8*3)
	assert.Equal(t, uint64(2), binary.LittleEndian.Uint64(offsets[0:]))
	assert.Equal(t, uint64(14), binary.LittleEndian.Uint64(offsets[8:]))
	assert.Equal(t, uint64(27), binary.LittleEndian.Uint64(offsets[16:]))
}

func TestBinary_SaveReplacesPreviousRun(t *testing.T) {
	s := newBinary(t)
	_, err := s.Save(sampleEntries(50))
	require.NoError(t, err)
	_, err = s.Save([]Entry{{Path: "only.go", LineNumber: 1}})
	require.NoError(t, err)

	all, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Path: "only.go", LineNumber: 1}}, all)

	// No temp files are left behind.
	files, err := os.ReadDir(filepath.Dir(s.DataPath))
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestBinary_MismatchedPair(t *testing.T) {
	first := newBinary(t)
	second := newBinary(t)
	entries := sampleEntries(3)
	_, err := first.Save(entries)
	require.NoError(t, err)
	_, err = second.Save(entries)
	require.NoError(t, err)

	_, err = Open(first.DataPath, second.IndexPath)
	assert.ErrorIs(t, err, ErrMismatchedPair)
}

func TestBinary_TruncatedData(t *testing.T) {
	s := newBinary(t)
	_, err := s.Save(sampleEntries(3))
	require.NoError(t, err)

	data, err := os.ReadFile(s.DataPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.DataPath, data[:len(data)-3], 0o644))

	_, err = Open(s.DataPath, s.IndexPath)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestBinary_BadHeaders(t *testing.T) {
	s := newBinary(t)
	_, err := s.Save(sampleEntries(1))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(s.IndexPath, []byte("garbage"), 0o644))
	_, err = Open(s.DataPath, s.IndexPath)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = s.Save(sampleEntries(1))
	require.NoError(t, err)
	index, err := os.ReadFile(s.IndexPath)
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(index[8:], formatVersion+1)
	require.NoError(t, os.WriteFile(s.IndexPath, index, 0o644))
	_, err = Open(s.DataPath, s.IndexPath)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestBinary_MissingFiles(t *testing.T) {
	s := newBinary(t)
	assert.False(t, s.Exists())
	_, err := s.Load(0)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReader_ClosedAndIdempotentClose(t *testing.T) {
	s := newBinary(t)
	_, err := s.Save(sampleEntries(2))
	require.NoError(t, err)

	r, err := Open(s.DataPath, s.IndexPath)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = r.Read(0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDecodeEntry_RejectsBadWindow(t *testing.T) {
	_, err := decodeEntry([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCorrupt)

	b := appendEntry(nil, Entry{Path: "abc", LineNumber: 1})
	_, err = decodeEntry(b[:len(b)-1])
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestText_RoundTrip(t *testing.T) {
	s := Text{Path: filepath.Join(t.TempDir(), "cgvg.txt")}
	entries := []Entry{
		{Path: "a.go", LineNumber: 1},
		{Path: "dir with space/b.go", LineNumber: 42},
		{Path: "c.go", LineNumber: 7},
	}
	paths, err := s.Save(entries)
	require.NoError(t, err)
	assert.Equal(t, Paths{Data: s.Path}, paths)

	raw, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "1 a.go\n42 dir with space/b.go\n7 c.go\n", string(raw))

	for i, want := range entries {
		got, err := s.Load(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = s.Load(3)
	var oob *IndexOutOfRangeError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, IndexOutOfRangeError{Requested: 3, Count: 3}, *oob)

	all, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, entries, all)
}

func TestText_FormatError(t *testing.T) {
	s := Text{Path: filepath.Join(t.TempDir(), "cgvg.txt")}
	require.NoError(t, os.WriteFile(s.Path, []byte("1 a.go\nnot-a-number b.go\n"), 0o644))

	got, err := s.Load(0)
	require.NoError(t, err)
	assert.Equal(t, Entry{Path: "a.go", LineNumber: 1}, got)

	_, err = s.Load(1)
	var fe *LoadIndexFormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Line)
	assert.Equal(t, "not-a-number b.go", fe.Text)
	assert.True(t, errors.Is(err, ErrLoadIndexFormat))

	for _, line := range []string{"12", "5 ", "-1 x"} {
		_, err := parseTextLine(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestText_RejectsLineBreaksInPaths(t *testing.T) {
	s := Text{Path: filepath.Join(t.TempDir(), "cgvg.txt")}
	_, err := s.Save([]Entry{{Path: "a\nb", LineNumber: 1}})
	require.Error(t, err)
	assert.False(t, s.Exists())
}
