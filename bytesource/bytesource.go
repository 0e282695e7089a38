// Package bytesource provides the random-access, read-only byte interface
// the core repair parser consumes, plus a chunked file-backed
// implementation with an evicting page cache for large inputs.
//
// Ground truth: original_source/json_repair/string_file_wrapper.{hpp,cpp}.
package bytesource

// EOF is the sentinel byte returned by At for any offset at or beyond
// Len. Spec §6 fixes this to the zero byte.
const EOF byte = 0

// ByteSource is a random-access read-only view over the parser's input.
// Implementations must accept arbitrary offsets without error, returning
// EOF for offsets at or beyond Len.
type ByteSource interface {
	// Len returns the total byte count of the input.
	Len() int
	// At returns the byte at offset, or EOF if offset >= Len.
	At(offset int) byte
}

// Bytes is an in-memory ByteSource backed by a plain byte slice; used
// whenever the caller already holds the full input (the common case for
// LLM output repair).
type Bytes []byte

// Len implements ByteSource.
func (b Bytes) Len() int { return len(b) }

// At implements ByteSource.
func (b Bytes) At(offset int) byte {
	if offset < 0 || offset >= len(b) {
		return EOF
	}
	return b[offset]
}

// GetRange returns the bytes in [start, stop), clamped to the source's
// length. For Bytes it returns a subslice of the backing array; for any
// other source it copies the range byte by byte through At. The core
// parser does not call it: its sub-parsers read one byte at a time.
func GetRange(src ByteSource, start, stop int) []byte {
	if start < 0 {
		start = 0
	}
	n := src.Len()
	if stop > n {
		stop = n
	}
	if stop <= start {
		return nil
	}
	if b, ok := src.(Bytes); ok {
		return b[start:stop]
	}
	out := make([]byte, stop-start)
	for i := range out {
		out[i] = src.At(start + i)
	}
	return out
}
