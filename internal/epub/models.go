package epub

// OPF holds what the package document scan collects.
type OPF struct {
	Metadata      Metadata
	Manifest      map[string]ManifestItem // id -> item, last duplicate wins
	ManifestOrder []string                // ids in first-seen order
	Spine         []string                // itemref idrefs in reading order
	Guide         []GuideReference
}

// Metadata is the subset of the OPF metadata shown for a book.
type Metadata struct {
	Title    string
	Creators []string
	Language string
	CoverID  string // EPUB 2.0 <meta name="cover">
}

// ManifestItem represents an item in the manifest. Href is relative to the
// directory of the package document.
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// GuideReference is an EPUB 2.0 <guide> reference.
type GuideReference struct {
	Type  string
	Title string
	Href  string
}
