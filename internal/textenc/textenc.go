// Package textenc decodes byte strings whose encoding is not declared:
// UTF-8 when the bytes are valid UTF-8, Latin-1 otherwise.
package textenc

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns data as a string, decoding it as UTF-8 when valid and as
// ISO-8859-1 otherwise. A leading UTF-8 byte order mark is dropped.
func Decode(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// ISO-8859-1 maps every byte; this only happens on a decoder bug.
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}
	return string(out)
}
