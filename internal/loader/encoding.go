package loader

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Supported input encodings.
const (
	// EncodingUTF8 reads the file as-is. This is the default.
	EncodingUTF8 = "utf-8"

	// EncodingLatin1 decodes ISO 8859-1 input to UTF-8 while reading.
	// Exported spreadsheets on older Windows systems still use it.
	EncodingLatin1 = "latin-1"
)

// decodeReader wraps r with a charset decoder for the named encoding.
// UTF-8 input needs no transformation and is returned unchanged.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch normalizeEncoding(encoding) {
	case "", EncodingUTF8:
		return r, nil
	case EncodingLatin1:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}

// normalizeEncoding folds common spellings onto the canonical names.
func normalizeEncoding(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return EncodingUTF8
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}
