package zipread

import "encoding/binary"

// span returns buf[off:off+n], or false if that range is not inside buf.
func span(buf []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(buf) || n > len(buf)-off {
		return nil, false
	}
	return buf[off : off+n], true
}

// le16 reads a little-endian uint16 at off.
func le16(buf []byte, off int) (uint16, bool) {
	b, ok := span(buf, off, 2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

// le32 reads a little-endian uint32 at off.
func le32(buf []byte, off int) (uint32, bool) {
	b, ok := span(buf, off, 4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}
