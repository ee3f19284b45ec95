package epub

import (
	"net/url"
	"path"
	"slices"
	"strings"
)

// contentExtensions are the suffixes accepted by the fallback scan.
var contentExtensions = []string{".xhtml", ".html", ".htm"}

// ResolveDocuments returns the archive paths of the content documents in
// reading order.
//
// Spine idrefs without a manifest item are dropped. When nothing survives,
// every entry in names with an (X)HTML extension is returned in lexical
// order instead and fromSpine is false.
func ResolveDocuments(opf *OPF, opfPath string, names []string) (docs []string, fromSpine bool, err error) {
	base := opfDir(opfPath)
	entries := make(map[string]bool, len(names))
	for _, name := range names {
		entries[name] = true
	}
	for _, idref := range opf.Spine {
		item, ok := opf.Manifest[idref]
		if !ok {
			continue
		}
		if p := resolveEntry(base, item.Href, entries); p != "" {
			docs = append(docs, p)
		}
	}
	if len(docs) > 0 {
		return docs, true, nil
	}

	for _, name := range names {
		lower := strings.ToLower(name)
		for _, ext := range contentExtensions {
			if strings.HasSuffix(lower, ext) {
				docs = append(docs, name)
				break
			}
		}
	}
	if len(docs) == 0 {
		return nil, false, ErrMissingContent
	}
	slices.Sort(docs)
	return slices.Compact(docs), false, nil
}

// opfDir returns the part of the package document path before its last
// slash, or "" when the document sits at the archive root.
func opfDir(opfPath string) string {
	if i := strings.LastIndex(opfPath, "/"); i >= 0 {
		return opfPath[:i]
	}
	return ""
}

// resolveHref turns a manifest href into an archive path: the fragment is
// dropped, percent escapes are decoded and the result is joined to base.
func resolveHref(base, href string) string {
	href = stripFragment(href)
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	return joinHref(base, href)
}

// resolveEntry is resolveHref, except that when the decoded path is not in
// entries but the href taken literally is, the literal path is returned.
// Archives may store names that contain "%xx" sequences verbatim.
func resolveEntry(base, href string, entries map[string]bool) string {
	p := resolveHref(base, href)
	if entries[p] {
		return p
	}
	if literal := joinHref(base, stripFragment(href)); entries[literal] {
		return literal
	}
	return p
}

func stripFragment(href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		return href[:i]
	}
	return href
}

func joinHref(base, href string) string {
	if href == "" {
		return ""
	}
	return path.Join(base, href)
}
