package epub

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveDocuments(t *testing.T) {
	manifest := map[string]ManifestItem{
		"a":    {ID: "a", Href: "a.xhtml"},
		"b":    {ID: "b", Href: "b.xhtml"},
		"sub":  {ID: "sub", Href: "text/c.xhtml"},
		"up":   {ID: "up", Href: "../shared/d.xhtml"},
		"frag": {ID: "frag", Href: "e.xhtml#section2"},
		"esc":  {ID: "esc", Href: "chapter%20one.xhtml"},
	}

	tests := []struct {
		name    string
		spine   []string
		opfPath string
		want    []string
	}{
		{
			name:    "spine order kept",
			spine:   []string{"b", "a"},
			opfPath: "OEBPS/content.opf",
			want:    []string{"OEBPS/b.xhtml", "OEBPS/a.xhtml"},
		},
		{
			name:    "opf at archive root",
			spine:   []string{"a", "sub"},
			opfPath: "content.opf",
			want:    []string{"a.xhtml", "text/c.xhtml"},
		},
		{
			name:    "dangling idref dropped",
			spine:   []string{"a", "missing", "b"},
			opfPath: "OEBPS/content.opf",
			want:    []string{"OEBPS/a.xhtml", "OEBPS/b.xhtml"},
		},
		{
			name:    "parent directory",
			spine:   []string{"up"},
			opfPath: "OEBPS/content.opf",
			want:    []string{"shared/d.xhtml"},
		},
		{
			name:    "fragment and escapes",
			spine:   []string{"frag", "esc"},
			opfPath: "book/content.opf",
			want:    []string{"book/e.xhtml", "book/chapter one.xhtml"},
		},
		{
			name:    "repeated idref",
			spine:   []string{"a", "a"},
			opfPath: "content.opf",
			want:    []string{"a.xhtml", "a.xhtml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opf := &OPF{Manifest: manifest, Spine: tt.spine}
			got, fromSpine, err := ResolveDocuments(opf, tt.opfPath, nil)
			if err != nil {
				t.Fatalf("ResolveDocuments() error = %v", err)
			}
			if !fromSpine {
				t.Error("fromSpine = false, want true")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveDocuments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveDocuments_LiteralPercentName(t *testing.T) {
	opf := &OPF{
		Manifest: map[string]ManifestItem{
			"lit": {ID: "lit", Href: "100%25.xhtml"},
			"dec": {ID: "dec", Href: "chapter%20one.xhtml#top"},
			"raw": {ID: "raw", Href: "part%20two.xhtml"},
		},
		Spine: []string{"lit", "dec", "raw"},
	}
	names := []string{
		"OEBPS/100%25.xhtml",
		"OEBPS/chapter one.xhtml",
		"OEBPS/part%20two.xhtml",
		"OEBPS/part two.xhtml",
	}

	got, _, err := ResolveDocuments(opf, "OEBPS/content.opf", names)
	if err != nil {
		t.Fatalf("ResolveDocuments() error = %v", err)
	}
	// The decoded name wins when both forms exist.
	want := []string{"OEBPS/100%25.xhtml", "OEBPS/chapter one.xhtml", "OEBPS/part two.xhtml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveDocuments() = %v, want %v", got, want)
	}
}

func TestResolveDocuments_Fallback(t *testing.T) {
	names := []string{
		"mimetype",
		"OEBPS/content.opf",
		"OEBPS/text/ch10.xhtml",
		"OEBPS/text/ch02.XHTML",
		"OEBPS/style.css",
		"OEBPS/index.htm",
		"OEBPS/text/ch01.html",
		"OEBPS/text/ch01.html",
		"OEBPS/notes.html.bak",
	}
	want := []string{
		"OEBPS/index.htm",
		"OEBPS/text/ch01.html",
		"OEBPS/text/ch02.XHTML",
		"OEBPS/text/ch10.xhtml",
	}

	tests := []struct {
		name string
		opf  *OPF
	}{
		{"no spine", &OPF{Manifest: map[string]ManifestItem{"a": {ID: "a", Href: "a.xhtml"}}}},
		{"all dangling", &OPF{Manifest: map[string]ManifestItem{}, Spine: []string{"x", "y"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fromSpine, err := ResolveDocuments(tt.opf, "OEBPS/content.opf", names)
			if err != nil {
				t.Fatalf("ResolveDocuments() error = %v", err)
			}
			if fromSpine {
				t.Error("fromSpine = true, want false")
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ResolveDocuments() = %v, want %v", got, want)
			}
		})
	}
}

func TestResolveDocuments_MissingContent(t *testing.T) {
	opf := &OPF{Manifest: map[string]ManifestItem{}}
	_, _, err := ResolveDocuments(opf, "content.opf", []string{"mimetype", "content.opf", "style.css"})
	if !errors.Is(err, ErrMissingContent) {
		t.Fatalf("ResolveDocuments() error = %v, want ErrMissingContent", err)
	}
}

func TestOPFDir(t *testing.T) {
	tests := map[string]string{
		"content.opf":       "",
		"OEBPS/content.opf": "OEBPS",
		"a/b/package.opf":   "a/b",
		"/rooted.opf":       "",
	}
	for in, want := range tests {
		if got := opfDir(in); got != want {
			t.Errorf("opfDir(%q) = %q, want %q", in, got, want)
		}
	}
}
