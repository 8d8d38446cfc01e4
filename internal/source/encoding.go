package source

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type byteOrder int

const (
	encodingUTF8 byteOrder = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

// detectEncoding sniffs a byte-order mark in the first bytes of the input.
// Plain UTF-8 carries no mark and is the default.
func detectEncoding(head []byte) byteOrder {
	switch {
	case len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF:
		return encodingUTF8BOM
	case len(head) >= 2 && head[0] == 0xFF && head[1] == 0xFE:
		return encodingUTF16LE
	case len(head) >= 2 && head[0] == 0xFE && head[1] == 0xFF:
		return encodingUTF16BE
	default:
		return encodingUTF8
	}
}

// utf16Decoder emits UTF-8 and consumes the leading byte-order mark.
func utf16Decoder(enc byteOrder) transform.Transformer {
	endian := unicode.LittleEndian
	if enc == encodingUTF16BE {
		endian = unicode.BigEndian
	}
	return unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
}

// transcodeTemp rewrites the UTF-16 contents of f as UTF-8 in a fresh
// temporary file. f's offset is left undefined.
func transcodeTemp(f *os.File, enc byteOrder) (*os.File, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	spool, err := os.CreateTemp("", "rless-*.txt")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(spool, transform.NewReader(f, utf16Decoder(enc))); err != nil {
		discard(spool, true)
		return nil, fmt.Errorf("transcode %s: %w", f.Name(), err)
	}
	return spool, nil
}
