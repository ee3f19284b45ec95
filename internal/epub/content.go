package epub

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Chapter is a content document with its display title.
type Chapter struct {
	Path  string
	Title string
}

// ChapterTitle returns the <title> of an XHTML document, falling back to
// its first heading. It returns "" when neither has text.
func ChapterTitle(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}

	if title := collapse(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return collapse(doc.Find("h1, h2, h3, h4, h5, h6").First().Text())
}

// Chapters lists the content documents in reading order with their titles.
// Documents missing from the archive are omitted.
func (b *Book) Chapters() ([]Chapter, error) {
	chapters := make([]Chapter, 0, len(b.Documents))
	for _, p := range b.Documents {
		if _, ok := b.Archive.Lookup(p); !ok {
			continue
		}
		doc, err := b.ReadDocument(p)
		if err != nil {
			return nil, stageError(StageContent, err)
		}
		chapters = append(chapters, Chapter{Path: p, Title: ChapterTitle(doc)})
	}
	return chapters, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
