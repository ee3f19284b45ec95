package epub

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuanying/epub2text/internal/textenc"
	"github.com/yuanying/epub2text/internal/zipread"
)

// ContainerPath is the well-known location of container.xml.
const ContainerPath = "META-INF/container.xml"

// Book is an opened EPUB: its archive directory, package document and the
// resolved reading order. Content documents are only extracted on demand.
type Book struct {
	Archive   *zipread.Archive
	OPFPath   string
	Package   *OPF
	Documents []string // archive paths in reading order
	FromSpine bool     // false when Documents come from the fallback scan
}

// Section is the text of one content document.
type Section struct {
	Path string
	Text string
}

// ExtractText returns the readable text of an EPUB held in data: the text of
// every content document in reading order, separated by blank lines.
func ExtractText(data []byte) (string, error) {
	b, err := Open(data)
	if err != nil {
		return "", err
	}
	return b.Text()
}

// Open parses the archive directory, locates and scans the package document
// and resolves the reading order.
func Open(data []byte) (*Book, error) {
	archive, err := zipread.Open(data)
	if err != nil {
		return nil, stageError(StageArchive, err)
	}

	if _, ok := archive.Lookup(ContainerPath); !ok {
		return nil, stageError(StageContainer, ErrMissingContainer)
	}
	containerData, err := archive.ReadFile(ContainerPath)
	if err != nil {
		return nil, stageError(StageContainer, err)
	}
	opfPath, err := ScanContainer(containerData)
	if err != nil {
		return nil, stageError(StageContainer, err)
	}

	if _, ok := archive.Lookup(opfPath); !ok {
		return nil, stageError(StagePackage, fmt.Errorf("%w: %s", ErrMissingOpf, opfPath))
	}
	opfData, err := archive.ReadFile(opfPath)
	if err != nil {
		return nil, stageError(StagePackage, err)
	}
	opf := ScanPackage(opfData)

	docs, fromSpine, err := ResolveDocuments(opf, opfPath, archive.Names())
	if err != nil {
		return nil, stageError(StageSpine, err)
	}

	return &Book{
		Archive:   archive,
		OPFPath:   opfPath,
		Package:   opf,
		Documents: docs,
		FromSpine: fromSpine,
	}, nil
}

func (b *Book) entrySet() map[string]bool {
	entries := make(map[string]bool, len(b.Archive.Entries))
	for _, e := range b.Archive.Entries {
		entries[e.Name] = true
	}
	return entries
}

// ReadDocument returns the decoded contents of a document in the archive.
func (b *Book) ReadDocument(path string) (string, error) {
	data, err := b.Archive.ReadFile(path)
	if err != nil {
		return "", err
	}
	return textenc.Decode(data), nil
}

// Sections reduces every content document to text. Documents missing from
// the archive are reported in skipped rather than failing the book; any other
// read error ends the extraction. Documents without text are left out.
func (b *Book) Sections() (sections []Section, skipped []string, err error) {
	for _, p := range b.Documents {
		doc, err := b.ReadDocument(p)
		if errors.Is(err, zipread.ErrNotFound) {
			skipped = append(skipped, p)
			continue
		}
		if err != nil {
			return nil, skipped, stageError(StageContent, err)
		}
		if text := PlainText(doc); text != "" {
			sections = append(sections, Section{Path: p, Text: text})
		}
	}
	return sections, skipped, nil
}

// Text returns the joined text of all content documents.
func (b *Book) Text() (string, error) {
	sections, _, err := b.Sections()
	if err != nil {
		return "", err
	}
	return JoinSections(sections)
}

// JoinSections joins section texts with blank lines. It fails with
// ErrEmptyText when the result is empty.
func JoinSections(sections []Section) (string, error) {
	texts := make([]string, len(sections))
	for i, s := range sections {
		texts[i] = s.Text
	}
	text := strings.TrimSpace(strings.Join(texts, "\n\n"))
	if text == "" {
		return "", stageError(StageContent, ErrEmptyText)
	}
	return text, nil
}
