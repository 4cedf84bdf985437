package rubypir

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// encodingFor returns the named encoding, or nil for UTF-8.
func encodingFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "utf-16le", "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16be", "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case "utf-32le", "utf32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM), nil
	case "utf-32be", "utf32be":
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM), nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

// Decode returns a reader that converts src from the named encoding to
// UTF-8. Recognized names are utf-8, latin1 (windows-1252), utf-16le,
// utf-16be, utf-32le, and utf-32be. A byte order mark in UTF-16 or UTF-32
// input overrides the named endianness.
func Decode(src io.Reader, name string) (io.Reader, error) {
	enc, err := encodingFor(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return src, nil
	}
	return enc.NewDecoder().Reader(src), nil
}
