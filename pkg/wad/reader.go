package wad

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"wadnames/pkg/progress"

	"github.com/pierrec/lz4/v4"
)

// Archive is an opened WAD. It keeps no file handle between calls: every
// read opens the file, reads, and closes it again.
type Archive struct {
	Path   string
	Header Header

	// MaxSegmentSize bounds ReadSegment allocations; 0 disables the check.
	MaxSegmentSize int64

	// Counter, if set, receives the number of lump bytes read.
	Counter *progress.Counter

	data     []byte // decompressed image, used when inMemory is set
	inMemory bool
}

// Open reads and validates the archive header at path. Archives wrapped in
// an LZ4 frame are decompressed into memory first.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	var head [HeaderSize]byte
	n, err := io.ReadFull(f, head[:])
	if n >= len(lz4FrameMagic) && [4]byte(head[:4]) == lz4FrameMagic {
		return openLZ4(path, f)
	}
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &FormatError{Path: path, Reason: "too short"}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	header, err := parseHeader(path, head[:])
	if err != nil {
		return nil, err
	}
	return &Archive{
		Path:           path,
		Header:         header,
		MaxSegmentSize: DefaultMaxSegmentSize,
	}, nil
}

// maxDecompressedSize is MaxDecompressedSize, lowered in tests
var maxDecompressedSize int64 = MaxDecompressedSize

// openLZ4 decompresses the whole frame and reads the archive from memory
func openLZ4(path string, f *os.File) (*Archive, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek start: %w", err)
	}
	limit := maxDecompressedSize
	data, err := io.ReadAll(io.LimitReader(lz4.NewReader(f), limit+1))
	if err != nil {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("corrupt lz4 stream: %v", err)}
	}
	if int64(len(data)) > limit {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("lz4 stream expands beyond %s", progress.FormatSize(uint64(limit)))}
	}
	return OpenBytes(path, data)
}

// OpenBytes validates the header of an in-memory archive image. name is only
// used in diagnostics.
func OpenBytes(name string, data []byte) (*Archive, error) {
	if len(data) < HeaderSize {
		return nil, &FormatError{Path: name, Reason: "too short"}
	}
	header, err := parseHeader(name, data[:HeaderSize])
	if err != nil {
		return nil, err
	}
	return &Archive{
		Path:           name,
		Header:         header,
		MaxSegmentSize: DefaultMaxSegmentSize,
		data:           data,
		inMemory:       true,
	}, nil
}

func parseHeader(path string, b []byte) (Header, error) {
	magic := string(b[:4])
	if !IsMagic(magic) {
		return Header{}, &FormatError{Path: path, Reason: fmt.Sprintf("unrecognized magic %q", magic)}
	}
	return Header{
		Magic:     magic,
		NumLumps:  binary.LittleEndian.Uint32(b[4:8]),
		DirOffset: binary.LittleEndian.Uint32(b[8:12]),
	}, nil
}

// source returns a random-access view of the archive and its release func
func (a *Archive) source() (io.ReaderAt, func() error, error) {
	if a.inMemory {
		return bytes.NewReader(a.data), func() error { return nil }, nil
	}
	f, err := os.Open(a.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}
	return f, f.Close, nil
}

// ReadDirectory reads the lump directory in on-disk order. A directory cut
// short by the end of the file is not an error: reading stops at the first
// incomplete record and the complete ones are returned.
func (a *Archive) ReadDirectory() ([]Entry, error) {
	ra, release, err := a.source()
	if err != nil {
		return nil, err
	}
	defer release()

	count := a.Header.NumLumps
	sr := io.NewSectionReader(ra, int64(a.Header.DirOffset), int64(count)*EntrySize)
	br := bufio.NewReader(sr)

	entries := make([]Entry, 0, min(count, 4096))
	var rec [EntrySize]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return entries, fmt.Errorf("read directory entry %d: %w", i, err)
		}
		entries = append(entries, decodeEntry(rec))
	}
	return entries, nil
}

func decodeEntry(rec [EntrySize]byte) Entry {
	return Entry{
		Offset: binary.LittleEndian.Uint32(rec[0:4]),
		Size:   binary.LittleEndian.Uint32(rec[4:8]),
		Name:   decodeName(rec[8:16]),
	}
}

// decodeName trims trailing NUL padding and drops non-ASCII bytes
func decodeName(raw []byte) string {
	raw = bytes.TrimRight(raw, "\x00")
	var sb strings.Builder
	for _, b := range raw {
		if b < 0x80 {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// ReadSegment returns the data of one lump. The directory is trusted: if the
// file ends early, the bytes that exist are returned without error.
func (a *Archive) ReadSegment(e Entry) ([]byte, error) {
	if a.MaxSegmentSize > 0 && int64(e.Size) > a.MaxSegmentSize {
		return nil, &SegmentTooLargeError{Name: e.Name, Size: e.Size, Limit: a.MaxSegmentSize}
	}

	ra, release, err := a.source()
	if err != nil {
		return nil, err
	}
	defer release()

	buf := make([]byte, e.Size)
	sr := io.NewSectionReader(ra, int64(e.Offset), int64(e.Size))
	n, err := io.ReadFull(&progress.Reader{R: sr, C: a.Counter}, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read lump %s: %w", e.Name, err)
	}
	a.Counter.AddSegment()
	return buf[:n], nil
}
