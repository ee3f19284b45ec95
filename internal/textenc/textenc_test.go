package textenc

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("chapter1.xhtml"), "chapter1.xhtml"},
		{"utf8", []byte("caf\xc3\xa9"), "café"},
		{"latin1 fallback", []byte("caf\xe9"), "café"},
		{"bom stripped", []byte("\xef\xbb\xbf<?xml?>"), "<?xml?>"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.in); got != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
