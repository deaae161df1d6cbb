package loader

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding is one decoding attempt in the fallback sequence. Lenient encodings
// accept any byte sequence, so their output is also screened for binary content.
type Encoding struct {
	Name    string
	decode  func([]byte) (string, error)
	lenient bool
}

var (
	// UTF8 is the primary encoding. A leading byte-order mark is dropped.
	UTF8 = Encoding{Name: "utf-8", decode: decodeUTF8}
	// Latin1 is the fallback encoding used by most older DVF exports.
	Latin1 = Encoding{Name: "iso-8859-1", decode: decodeCharmap(charmap.ISO8859_1), lenient: true}
	// Windows1252 is not in the default sequence; pass it with WithEncodings.
	Windows1252 = Encoding{Name: "windows-1252", decode: decodeCharmap(charmap.Windows1252), lenient: true}
)

// DefaultEncodings is the order tried when a Loader is built without WithEncodings.
var DefaultEncodings = []Encoding{UTF8, Latin1}

var (
	errInvalidUTF8 = errors.New("invalid utf-8 sequence")
	utf8BOM        = []byte{0xEF, 0xBB, 0xBF}
)

const dosEOF = "\x1a"

func decodeUTF8(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(data []byte) (string, error) {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// checkText rejects text decoded by a lenient encoding that is binary rather
// than delimited text.
func checkText(s string) error {
	for i, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return fmt.Errorf("control character %U at byte %d", r, i)
		}
	}
	return nil
}

// decode tries each encoding in order and returns the first clean result.
// A trailing DOS end-of-file marker (0x1A) is dropped first.
func decode(path string, data []byte, encodings []Encoding) (string, string, error) {
	data = bytes.TrimRight(data, dosEOF)
	decErr := &DecodeError{Path: path}
	for _, enc := range encodings {
		text, err := enc.decode(data)
		if err == nil && enc.lenient {
			err = checkText(text)
		}
		if err == nil {
			return text, enc.Name, nil
		}
		decErr.Attempts = append(decErr.Attempts, enc.Name)
		decErr.Causes = append(decErr.Causes, err)
	}
	return "", "", decErr
}

// EncodingByName returns the known encoding with the given name. Common aliases
// such as "latin-1" and "cp1252" are accepted.
func EncodingByName(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "iso-8859-1", "latin-1", "latin1":
		return Latin1, nil
	case "windows-1252", "cp1252":
		return Windows1252, nil
	}
	return Encoding{}, fmt.Errorf("unknown encoding %q", name)
}
