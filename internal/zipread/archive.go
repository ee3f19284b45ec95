// Package zipread reads ZIP archives held entirely in memory.
//
// Open parses the central directory eagerly; entry payloads are only located
// and decompressed when Extract is called. Only the stored (0) and deflate (8)
// methods are supported, which covers every EPUB seen in practice.
package zipread

import (
	"fmt"

	"github.com/yuanying/epub2text/internal/textenc"
)

// Each record type is identified by a 4-byte signature starting with "PK".
const (
	centralDirSignature      uint32 = 0x02014b50
	localFileHeaderSignature uint32 = 0x04034b50
	endOfCentralDirSignature uint32 = 0x06054b50
)

const (
	directoryEndLen    = 22 // fixed part of the end of central directory record
	directoryHeaderLen = 46 // fixed part of a central directory header
	localHeaderLen     = 30 // fixed part of a local file header
	maxCommentLen      = 0xffff
)

// Compression methods understood by Extract.
const (
	Store   uint16 = 0
	Deflate uint16 = 8
)

// Entry describes one file as recorded in the central directory.
type Entry struct {
	Name              string
	Method            uint16
	Flags             uint16
	CompressedSize    uint32
	UncompressedSize  uint32
	LocalHeaderOffset uint32
}

// Archive is a parsed ZIP archive backed by a byte slice.
type Archive struct {
	data    []byte
	Entries []Entry
}

// Open parses the central directory of data. The slice is retained by the
// Archive and must not be modified afterwards.
func Open(data []byte) (*Archive, error) {
	entries, err := ReadEntries(data)
	if err != nil {
		return nil, err
	}
	return &Archive{data: data, Entries: entries}, nil
}

// Lookup returns the first entry named name, in central directory order.
func (a *Archive) Lookup(name string) (Entry, bool) {
	for _, e := range a.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the entry names in central directory order.
func (a *Archive) Names() []string {
	names := make([]string, len(a.Entries))
	for i, e := range a.Entries {
		names[i] = e.Name
	}
	return names
}

// ReadEntries locates the end of central directory record and returns the
// entries of the central directory it points to.
//
// The directory walk stops silently at the first record that does not carry
// a central directory signature or does not fit in the declared directory
// region, so trailing garbage inside the region is tolerated. Local header
// offsets are not checked here.
func ReadEntries(data []byte) ([]Entry, error) {
	end, err := findDirectoryEnd(data)
	if err != nil {
		return nil, err
	}

	// Both fields are in range: findDirectoryEnd guarantees 22 bytes at end.
	dirSize, _ := le32(data, end+12)
	dirOffset, _ := le32(data, end+16)

	start := int(dirOffset)
	if _, ok := span(data, start, int(dirSize)); !ok {
		return nil, fmt.Errorf("%w: central directory [%d, +%d) outside archive of %d bytes",
			ErrInvalidZip, dirOffset, dirSize, len(data))
	}
	limit := start + int(dirSize)

	var entries []Entry
	for pos := start; pos+directoryHeaderLen <= limit; {
		if sig, _ := le32(data, pos); sig != centralDirSignature {
			break
		}

		// The fixed part is inside the region, which span checked against data.
		header := data[pos : pos+directoryHeaderLen]
		flags, _ := le16(header, 8)
		method, _ := le16(header, 10)
		compressed, _ := le32(header, 20)
		uncompressed, _ := le32(header, 24)
		nameLen, _ := le16(header, 28)
		extraLen, _ := le16(header, 30)
		commentLen, _ := le16(header, 32)
		offset, _ := le32(header, 42)

		next := pos + directoryHeaderLen + int(nameLen) + int(extraLen) + int(commentLen)
		if next > limit {
			break
		}
		name := data[pos+directoryHeaderLen : pos+directoryHeaderLen+int(nameLen)]

		entries = append(entries, Entry{
			Name:              textenc.Decode(name),
			Method:            method,
			Flags:             flags,
			CompressedSize:    compressed,
			UncompressedSize:  uncompressed,
			LocalHeaderOffset: offset,
		})

		pos = next
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: central directory has no entries", ErrInvalidZip)
	}
	return entries, nil
}

// findDirectoryEnd scans backwards for the end of central directory
// signature. The search window covers the fixed record plus the longest
// comment a 16-bit length field can declare; the match closest to the end of
// the buffer wins.
func findDirectoryEnd(data []byte) (int, error) {
	if len(data) < directoryEndLen {
		return 0, fmt.Errorf("%w: %d bytes is too small", ErrInvalidZip, len(data))
	}

	lower := max(0, len(data)-directoryEndLen-maxCommentLen)
	for p := len(data) - directoryEndLen; p >= lower; p-- {
		if sig, _ := le32(data, p); sig == endOfCentralDirSignature {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: no end of central directory signature found", ErrInvalidZip)
}
