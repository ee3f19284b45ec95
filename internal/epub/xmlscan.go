package epub

import (
	"bytes"
	"encoding/xml"
	"strings"

	"golang.org/x/net/html/charset"
)

// newScanner returns a permissive token decoder: no validation, HTML entities
// accepted, unclosed void elements tolerated and non-UTF-8 documents
// transcoded according to their XML declaration.
func newScanner(data []byte) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel
	return d
}

// attr looks up an attribute by local name, ignoring any namespace prefix.
func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// ScanContainer returns the full-path of the first rootfile element in
// META-INF/container.xml.
func ScanContainer(data []byte) (string, error) {
	d := newScanner(data)
	for {
		tok, err := d.Token()
		if err != nil {
			// io.EOF or a syntax error; either way nothing more can be read.
			return "", ErrMissingRootFile
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "rootfile" {
			continue
		}
		if p, ok := attr(se, "full-path"); ok && strings.TrimSpace(p) != "" {
			return strings.TrimSpace(p), nil
		}
	}
}
