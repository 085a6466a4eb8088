// Package wadtest builds WAD images for tests.
package wadtest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
)

// Lump is one named data segment of a test archive
type Lump struct {
	Name string
	Data []byte
}

// TextLump is a Lump with string content
func TextLump(name, text string) Lump {
	return Lump{Name: name, Data: []byte(text)}
}

// Build lays out header, lump data and then the directory, in that order,
// the way most WAD tools write them.
func Build(magic string, lumps ...Lump) []byte {
	var data bytes.Buffer
	offsets := make([]uint32, len(lumps))
	for i, l := range lumps {
		offsets[i] = uint32(12 + data.Len())
		data.Write(l.Data)
	}

	var buf bytes.Buffer
	buf.WriteString(magic)
	binary.Write(&buf, binary.LittleEndian, uint32(len(lumps)))
	binary.Write(&buf, binary.LittleEndian, uint32(12+data.Len()))
	buf.Write(data.Bytes())
	for i, l := range lumps {
		binary.Write(&buf, binary.LittleEndian, offsets[i])
		binary.Write(&buf, binary.LittleEndian, uint32(len(l.Data)))
		buf.Write(PadName(l.Name))
	}
	return buf.Bytes()
}

// PadName returns name as an 8-byte, NUL-padded field
func PadName(name string) []byte {
	var field [8]byte
	copy(field[:], name)
	return field[:]
}

// Write stores image as dir/name and returns the path
func Write(t testing.TB, dir, name string, image []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, image, 0644); err != nil {
		t.Fatalf("Failed to write test archive: %v", err)
	}
	return path
}

// CompressLZ4 wraps image in an LZ4 frame
func CompressLZ4(t testing.TB, image []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(image); err != nil {
		t.Fatalf("Failed to compress test archive: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close LZ4 writer: %v", err)
	}
	return buf.Bytes()
}
