// Package repair provides a tolerant JSON parser: it ingests a byte
// sequence that is intended to be JSON but may be syntactically
// malformed — typically produced by a language model or a lossy
// pipeline — and returns a best-effort structured value.
//
// # Overview
//
// The parser never rejects input. It is a recursive-descent driver
// (parseJSON) over objects, arrays, strings, numbers and comments, where
// each production embeds heuristics to infer the intended structure when
// the input violates RFC 8259: missing quotes, trailing commas, doubled
// quotes, stray punctuation, duplicate keys, and C-style comments.
//
// # Streaming Interface
//
// A Parser reads through a bytesource.ByteSource, so callers can back it
// with an in-memory slice (the common case) or a chunked, page-cached
// file reader for inputs too large to hold in memory:
//
//	p := repair.New(bytesource.Bytes(data), repair.WithLogging())
//	value := p.Parse()
//	diagnostics := p.Diagnostics()
//
// # Error Recovery
//
// The parser never panics on malformed input (barring the configured
// recursion depth cap, which surfaces a diagnostic and a partial value
// rather than a native stack overflow). Diagnostic entries capture a
// short window of surrounding bytes and a human-readable message; they
// never change the value the parser produces.
//
// # Configuration
//
//	type Option func(*Parser)
//
//	func WithLogging() Option
//	func WithStreamStable() Option
//	func WithChunkLength(n int) Option
//	func WithDepthLimit(n int) Option
//
// # Thread Safety
//
// A Parser instance is not safe for concurrent use. Create separate
// instances for concurrent parsing of different inputs.
package repair
