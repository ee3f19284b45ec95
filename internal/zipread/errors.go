package zipread

import "errors"

var (
	// ErrInvalidZip is returned when the input is not a readable ZIP archive,
	// or when an offset inside it points outside the buffer.
	ErrInvalidZip = errors.New("zip: not a valid zip archive")

	// ErrUnsupportedCompression is returned for entries that are neither
	// stored nor deflated, and for encrypted entries.
	ErrUnsupportedCompression = errors.New("zip: unsupported compression method")

	// ErrDecompressionFailed is returned when a deflate stream is corrupt,
	// truncated or inflates beyond MaxEntrySize.
	ErrDecompressionFailed = errors.New("zip: decompression failed")

	// ErrNotFound is returned by ReadFile when no entry has the requested name.
	ErrNotFound = errors.New("zip: file not found")
)
