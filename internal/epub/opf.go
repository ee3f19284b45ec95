package epub

import (
	"encoding/xml"
	"strings"
)

// ScanPackage collects the manifest, spine, guide and a few metadata fields
// from an OPF package document in a single pass.
//
// Elements are matched by local name wherever they appear; the scan does not
// check that items sit under <manifest> or itemrefs under <spine>. A syntax
// error ends the scan and whatever was collected up to that point is
// returned.
func ScanPackage(data []byte) *OPF {
	opf := &OPF{
		Manifest: make(map[string]ManifestItem),
	}

	var (
		capture string // local name of the metadata element being read
		text    strings.Builder
	)

	d := newScanner(data)
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "item":
				id, hasID := attr(t, "id")
				href, hasHref := attr(t, "href")
				if !hasID || !hasHref {
					continue
				}
				if _, seen := opf.Manifest[id]; !seen {
					opf.ManifestOrder = append(opf.ManifestOrder, id)
				}
				mediaType, _ := attr(t, "media-type")
				props, _ := attr(t, "properties")
				opf.Manifest[id] = ManifestItem{
					ID:         id,
					Href:       href,
					MediaType:  mediaType,
					Properties: strings.Fields(props),
				}

			case "itemref":
				if idref, ok := attr(t, "idref"); ok {
					opf.Spine = append(opf.Spine, idref)
				}

			case "reference":
				typ, _ := attr(t, "type")
				title, _ := attr(t, "title")
				href, _ := attr(t, "href")
				opf.Guide = append(opf.Guide, GuideReference{Type: typ, Title: title, Href: href})

			case "meta":
				name, _ := attr(t, "name")
				content, _ := attr(t, "content")
				if name == "cover" && content != "" && opf.Metadata.CoverID == "" {
					opf.Metadata.CoverID = content
				}

			case "title", "creator", "language":
				capture = t.Name.Local
				text.Reset()
			}

		case xml.CharData:
			if capture != "" {
				text.Write(t)
			}

		case xml.EndElement:
			if capture == "" || t.Name.Local != capture {
				continue
			}
			value := strings.Join(strings.Fields(text.String()), " ")
			switch capture {
			case "title":
				if opf.Metadata.Title == "" {
					opf.Metadata.Title = value
				}
			case "creator":
				if value != "" {
					opf.Metadata.Creators = append(opf.Metadata.Creators, value)
				}
			case "language":
				if opf.Metadata.Language == "" {
					opf.Metadata.Language = value
				}
			}
			capture = ""
		}
	}

	return opf
}
