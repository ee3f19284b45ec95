package zipread

import "fmt"

const flagEncrypted = 0x1

// Extract returns the uncompressed contents of e.
//
// The payload offset is computed from the name and extra field lengths of the
// local header itself, which may differ from the central directory copy. The
// payload length comes from the central directory.
func (a *Archive) Extract(e Entry) ([]byte, error) {
	off := int(e.LocalHeaderOffset)
	header, ok := span(a.data, off, localHeaderLen)
	if !ok {
		return nil, fmt.Errorf("%w: local header for %q at %d outside archive", ErrInvalidZip, e.Name, e.LocalHeaderOffset)
	}
	if sig, _ := le32(header, 0); sig != localFileHeaderSignature {
		return nil, fmt.Errorf("%w: bad local header signature for %q", ErrInvalidZip, e.Name)
	}
	if e.Flags&flagEncrypted != 0 {
		return nil, fmt.Errorf("%w: %q is encrypted", ErrUnsupportedCompression, e.Name)
	}

	nameLen, _ := le16(header, 26)
	extraLen, _ := le16(header, 28)
	start := off + localHeaderLen + int(nameLen) + int(extraLen)

	payload, ok := span(a.data, start, int(e.CompressedSize))
	if !ok {
		return nil, fmt.Errorf("%w: data for %q runs past end of archive", ErrInvalidZip, e.Name)
	}

	switch e.Method {
	case Store:
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	case Deflate:
		out, err := inflate(payload, int(e.UncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: method %d for %q", ErrUnsupportedCompression, e.Method, e.Name)
	}
}

// ReadFile extracts the first entry named name.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	e, ok := a.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return a.Extract(e)
}
