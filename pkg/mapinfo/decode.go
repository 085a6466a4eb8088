package mapinfo

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned by DecoderFor for unsupported names
var ErrUnknownEncoding = errors.New("unknown text encoding")

// Decoder turns raw lump bytes into text. Bad input is dropped or
// replaced, never rejected.
type Decoder struct {
	Name           string
	newTransformer func() transform.Transformer
}

// UTF8 drops ill-formed byte sequences. A well-formed U+FFFD is kept.
var UTF8 = Decoder{
	Name:           "utf-8",
	newTransformer: func() transform.Transformer { return dropIllFormed{} },
}

// CP437 decodes the original IBM PC code page used by DOS-era lumps
var CP437 = Decoder{
	Name:           "cp437",
	newTransformer: func() transform.Transformer { return charmap.CodePage437.NewDecoder() },
}

// Windows1252 decodes the Windows western code page
var Windows1252 = Decoder{
	Name:           "windows-1252",
	newTransformer: func() transform.Transformer { return charmap.Windows1252.NewDecoder() },
}

var decoders = map[string]Decoder{
	"":             UTF8,
	"utf-8":        UTF8,
	"utf8":         UTF8,
	"cp437":        CP437,
	"ibm437":       CP437,
	"windows-1252": Windows1252,
	"cp1252":       Windows1252,
}

// DecoderFor looks up a decoder by encoding name (case-insensitive)
func DecoderFor(name string) (Decoder, error) {
	d, ok := decoders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Decoder{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return d, nil
}

// Decode converts data to text and strips a leading byte order mark
func (d Decoder) Decode(data []byte) (string, error) {
	if d.newTransformer == nil {
		d = UTF8
	}
	out, _, err := transform.Bytes(d.newTransformer(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", d.Name, err)
	}
	return strings.TrimPrefix(string(out), "\ufeff"), nil
}

// dropIllFormed copies valid UTF-8 and skips every byte that does not start
// a valid encoding.
type dropIllFormed struct{ transform.NopResetter }

func (dropIllFormed) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c < utf8.RuneSelf {
			if nDst == len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			nSrc++
			continue
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}
