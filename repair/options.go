package repair

// Option configures a Parser at construction time, following the
// functional-options pattern used throughout this codebase's ancestry
// for parser configuration (compare the teacher's parser.Option).
type Option func(*Parser)

// WithLogging enables the diagnostic log: every heuristic the parser
// applies appends a Diagnostic. Without it, diagnostic calls are no-ops.
func WithLogging() Option {
	return func(p *Parser) { p.logging = true }
}

// WithStreamStable suppresses trailing-whitespace trimming on strings
// and instead drops a single dangling trailing backslash, so that parsing
// successive prefixes of a growing buffer produces prefix-stable outputs.
func WithStreamStable() Option {
	return func(p *Parser) { p.streamStable = true }
}

// WithChunkLength records a page size on the Parser. The parser does not
// read it: the page size of a chunked file is the one passed to
// bytesource.Open. It exists so CLI flags can be threaded straight
// through to both the byte source constructor and the parser.
func WithChunkLength(n int) Option {
	return func(p *Parser) { p.chunkLength = n }
}

// WithDepthLimit overrides the recursion depth cap (default 1024,
// spec §5's suggested bound). Exceeding it surfaces a diagnostic and
// a partial result rather than risking a native stack overflow.
func WithDepthLimit(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.depthLimit = n
		}
	}
}
