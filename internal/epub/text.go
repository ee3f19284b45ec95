package epub

import (
	"regexp"
	"strings"
)

// blockPattern matches an element and everything up to its closing tag,
// case-insensitively and across lines. A self-closing form matches on its
// own so that it cannot swallow the text up to a later closing tag.
func blockPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + name + `\b[^>]*?(?:/>|>.*?</` + name + `\s*>)`)
}

var (
	scriptBlockRe = blockPattern("script")
	styleBlockRe  = blockPattern("style")
	headBlockRe   = blockPattern("head")
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe  = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// entities are decoded in this order, after tags are gone, so a decoded
// "<" or ">" is never taken for markup.
var entities = []struct{ name, value string }{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
}

// PlainText reduces an (X)HTML document to a single line of readable text.
// Script, style and head blocks are removed, remaining tags become spaces,
// four common entities are decoded and whitespace is collapsed.
func PlainText(html string) string {
	s := scriptBlockRe.ReplaceAllString(html, "")
	s = styleBlockRe.ReplaceAllString(s, "")
	s = headBlockRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, " ")
	for _, e := range entities {
		s = strings.ReplaceAll(s, e.name, e.value)
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
