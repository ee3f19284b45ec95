package epub

import (
	"path"
	"strings"
)

// CoverInfo holds information about the detected cover image.
type CoverInfo struct {
	ManifestID      string
	Path            string // archive path
	MediaType       string
	DetectionMethod string // "properties", "meta", "guide", "filename"
}

// DetectCover finds the cover image of the book. Methods are tried in
// priority order:
//  1. properties="cover-image" (EPUB 3.0)
//  2. meta name="cover" (EPUB 2.0)
//  3. guide type="cover" pointing at an image item
//  4. an image item whose file name contains "cover"
//
// SVG images are never returned. Returns nil if no cover image is found.
func (b *Book) DetectCover() *CoverInfo {
	opf := b.Package
	base := opfDir(b.OPFPath)
	info := func(item ManifestItem, method string) *CoverInfo {
		return &CoverInfo{
			ManifestID:      item.ID,
			Path:            resolveHref(base, item.Href),
			MediaType:       item.MediaType,
			DetectionMethod: method,
		}
	}

	for _, id := range opf.ManifestOrder {
		item := opf.Manifest[id]
		if isImageMediaType(item.MediaType) && hasProperty(item, "cover-image") {
			return info(item, "properties")
		}
	}

	if item, ok := opf.Manifest[opf.Metadata.CoverID]; ok && isImageMediaType(item.MediaType) {
		return info(item, "meta")
	}

	for _, ref := range opf.Guide {
		if ref.Type != "cover" {
			continue
		}
		target := resolveHref(base, ref.Href)
		for _, id := range opf.ManifestOrder {
			item := opf.Manifest[id]
			if isImageMediaType(item.MediaType) && resolveHref(base, item.Href) == target {
				return info(item, "guide")
			}
		}
	}

	for _, id := range opf.ManifestOrder {
		item := opf.Manifest[id]
		if !isImageMediaType(item.MediaType) {
			continue
		}
		if strings.Contains(strings.ToLower(path.Base(item.Href)), "cover") {
			return info(item, "filename")
		}
	}

	return nil
}

// CoverImage returns the detected cover and its bytes.
func (b *Book) CoverImage() (*CoverInfo, []byte, error) {
	info := b.DetectCover()
	if info == nil {
		return nil, nil, nil
	}
	if item, ok := b.Package.Manifest[info.ManifestID]; ok {
		info.Path = resolveEntry(opfDir(b.OPFPath), item.Href, b.entrySet())
	}
	data, err := b.Archive.ReadFile(info.Path)
	if err != nil {
		return info, nil, stageError(StageContent, err)
	}
	return info, data, nil
}

func hasProperty(item ManifestItem, prop string) bool {
	for _, p := range item.Properties {
		if p == prop {
			return true
		}
	}
	return false
}

// isImageMediaType checks if a media type is a raster image (SVG excluded).
func isImageMediaType(mediaType string) bool {
	if mediaType == "image/svg+xml" {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}
