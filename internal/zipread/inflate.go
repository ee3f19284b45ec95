package zipread

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// MaxEntrySize caps the inflated size of a single entry.
const MaxEntrySize = 256 << 20

const inflateChunk = 64 << 10

// Inflate decompresses a raw DEFLATE stream, the encoding ZIP uses for
// method 8.
func Inflate(compressed []byte) ([]byte, error) {
	return inflate(compressed, 0)
}

// maxDeflateRatio is the largest expansion a DEFLATE stream can achieve.
const maxDeflateRatio = 1032

// inflate drains the stream in fixed-size chunks until it reports its end.
// sizeHint, when positive, preallocates the output.
func inflate(compressed []byte, sizeHint int) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()

	var out bytes.Buffer
	out.Grow(preallocSize(sizeHint, len(compressed)))

	chunk := make([]byte, inflateChunk)
	for {
		n, err := fr.Read(chunk)
		out.Write(chunk[:n])
		if out.Len() > MaxEntrySize {
			return nil, fmt.Errorf("%w: output exceeds %d bytes", ErrDecompressionFailed, MaxEntrySize)
		}
		if errors.Is(err, io.EOF) {
			return out.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecompressionFailed, err)
		}
	}
}

// preallocSize bounds a declared uncompressed size by what compressedLen
// bytes can expand to, so a forged directory entry cannot reserve memory the
// stream will never fill.
func preallocSize(sizeHint, compressedLen int) int {
	if sizeHint <= 0 {
		return 0
	}
	return min(sizeHint, compressedLen*maxDeflateRatio, MaxEntrySize)
}
