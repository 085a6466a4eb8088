package wad

// Constants for the archive format
const (
	MagicIWAD = "IWAD" // Internal (game data) archive
	MagicPWAD = "PWAD" // Patch archive

	HeaderSize = 12 // magic + lump count + directory offset
	EntrySize  = 16 // offset + size + name
	NameSize   = 8  // null-padded lump name

	// DefaultMaxSegmentSize caps a single lump read. Text lumps are tiny; the
	// cap only keeps a lying directory from triggering a huge allocation.
	DefaultMaxSegmentSize = 64 << 20

	// MaxDecompressedSize caps the in-memory image of an LZ4-wrapped archive
	MaxDecompressedSize = 1 << 30
)

// lz4FrameMagic is the little-endian LZ4 frame magic 0x184D2204
var lz4FrameMagic = [4]byte{0x04, 0x22, 0x4D, 0x18}

// Header is the fixed 12-byte archive header
type Header struct {
	Magic     string // IWAD or PWAD
	NumLumps  uint32 // Number of directory entries
	DirOffset uint32 // Byte offset of the directory from file start
}

// Entry is one directory record. The directory order is the on-disk order.
type Entry struct {
	Name   string // Lump name, trailing NULs trimmed
	Offset uint32 // Data offset from file start
	Size   uint32 // Data size in bytes
}

// IsMagic reports whether tag is one of the recognized archive tags
func IsMagic(tag string) bool {
	return tag == MagicIWAD || tag == MagicPWAD
}
