package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

const testContainerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

type epubFile struct {
	name   string
	body   string
	stored bool
}

// buildEPUB assembles an EPUB archive in memory. Files are deflated unless
// marked stored; the mimetype entry is always stored first.
func buildEPUB(t *testing.T, files ...epubFile) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	mw, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("failed to create mimetype: %v", err)
	}
	mw.Write([]byte("application/epub+zip"))

	for _, f := range files {
		method := zip.Deflate
		if f.stored {
			method = zip.Store
		}
		fw, err := w.CreateHeader(&zip.FileHeader{Name: f.name, Method: method})
		if err != nil {
			t.Fatalf("failed to create %s: %v", f.name, err)
		}
		if _, err := fw.Write([]byte(f.body)); err != nil {
			t.Fatalf("failed to write %s: %v", f.name, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

// opfDocument builds a package document. items maps ids to hrefs in the
// given order; spine lists idrefs.
func opfDocument(items [][2]string, spine []string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="bookid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Test Book</dc:title>
    <dc:creator>Jane Doe</dc:creator>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
`)
	for _, it := range items {
		fmt.Fprintf(&sb, "    <item id=%q href=%q media-type=\"application/xhtml+xml\"/>\n", it[0], it[1])
	}
	sb.WriteString("  </manifest>\n  <spine>\n")
	for _, idref := range spine {
		fmt.Fprintf(&sb, "    <itemref idref=%q/>\n", idref)
	}
	sb.WriteString("  </spine>\n</package>")
	return sb.String()
}

func xhtml(title, body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>` + title + `</title><style>p { color: red; }</style></head>
<body>` + body + `</body>
</html>`
}

// buildSimpleEPUB returns a two-chapter book with a spine of a then b.
func buildSimpleEPUB(t *testing.T) []byte {
	t.Helper()
	return buildEPUB(t,
		epubFile{name: ContainerPath, body: testContainerXML},
		epubFile{name: "OEBPS/content.opf", body: opfDocument(
			[][2]string{{"a", "text/a.xhtml"}, {"b", "text/b.xhtml"}},
			[]string{"a", "b"},
		)},
		epubFile{name: "OEBPS/text/b.xhtml", body: xhtml("Chapter B", "<h1>Second</h1><p>Bravo text.</p>")},
		epubFile{name: "OEBPS/text/a.xhtml", body: xhtml("Chapter A", "<h1>First</h1><p>Alpha text.</p>")},
	)
}
