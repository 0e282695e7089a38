package repair

import (
	"github.com/repairkit/jrepair/bytesource"
	"github.com/repairkit/jrepair/jsoncontext"
	"github.com/repairkit/jrepair/jsonvalue"
)

const defaultDepthLimit = 1024

// Parser is the recovery-oriented recursive-descent core. A Parser
// exclusively owns its cursor, context stack and diagnostic log for its
// lifetime; the ByteSource it reads from is borrowed and must outlive it.
// Not safe for concurrent use.
type Parser struct {
	src bytesource.ByteSource

	index int
	ctx   jsoncontext.Stack

	logging      bool
	streamStable bool
	chunkLength  int
	depthLimit   int
	depth        int

	diagnostics []Diagnostic

	// doubledMode is set transiently while parseString is accumulating a
	// `""value""`-style doubled-delimited string; see handleDoubledQuoteStart.
	doubledMode bool
}

// New constructs a Parser over src with the given options.
func New(src bytesource.ByteSource, opts ...Option) *Parser {
	p := &Parser{
		src:        src,
		depthLimit: defaultDepthLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse repairs data in memory and returns the resulting value. It is a
// convenience wrapper around New(bytesource.Bytes(data), opts...).Parse().
func Parse(data []byte, opts ...Option) (jsonvalue.Value, []Diagnostic) {
	p := New(bytesource.Bytes(data), opts...)
	return p.Parse(), p.Diagnostics()
}

// Parse is the top-level entry point (spec's `parse`). It runs the
// driver once; if bytes remain afterwards, it resets the context and
// re-invokes the driver, collecting results into a slice with adjacent
// structurally-equal results deduplicated (the last replaces rather than
// appending). A single collected result is returned unwrapped; otherwise
// the slice becomes an Array value. LLMs frequently emit the same object
// twice, or several top-level values back to back.
func (p *Parser) Parse() jsonvalue.Value {
	first, firstOK := p.parseJSON()
	if p.index >= p.src.Len() {
		if !firstOK {
			return jsonvalue.String("")
		}
		return first
	}

	p.log("The parser returned early, checking if there's more json elements")

	values := make([]jsonvalue.Value, 0, 2)
	if firstOK {
		values = append(values, first)
	}

	for p.index < p.src.Len() {
		p.ctx = jsoncontext.Stack{}
		v, ok := p.parseJSON()
		if ok {
			if len(values) > 0 && values[len(values)-1].Equal(v) {
				values = values[:len(values)-1]
			}
			values = append(values, v)
		} else {
			p.index++
		}
	}

	if len(values) == 1 {
		p.log("There were no more elements, returning the element without the array")
		return values[0]
	}
	return jsonvalue.Array(values)
}

// parseJSON is the recursive driver described in spec §4.1. It advances
// the cursor over whitespace and stray bytes until one of its dispatch
// rules fires; it never fails, looping until it either dispatches or
// hits end of input.
func (p *Parser) parseJSON() (jsonvalue.Value, bool) {
	for {
		c := p.charAt(0)

		switch {
		case p.index >= p.src.Len():
			return jsonvalue.Value{}, false

		case c == '{':
			p.index++
			return p.parseObject(), true

		case c == '[':
			p.index++
			return jsonvalue.Array(p.parseArray()), true

		case !p.ctx.Empty() && p.isStringStart(c):
			s := p.parseString()
			return p.promoteStringLiteral(s), true

		case !p.ctx.Empty() && (isDigit(c) || c == '-' || c == '.'):
			return p.parseNumber(), true

		case c == '#' || c == '/':
			return p.parseComment()

		default:
			p.index++
		}
	}
}

// isStringStart reports whether c, at the cursor, should dispatch to the
// string sub-parser: a string delimiter (including the 3-byte curly
// quotes) or an alphabetic byte (the start of an unquoted identifier or
// keyword).
func (p *Parser) isStringStart(c byte) bool {
	if isAlpha(c) {
		return true
	}
	_, ok := quoteAt(p, 0)
	return ok
}

// promoteStringLiteral turns the canonical lowercase literals returned
// by the string sub-parser's keyword match (spec §4.2 step 4) into their
// proper Value kind; any other string is returned as-is.
func (p *Parser) promoteStringLiteral(s string) jsonvalue.Value {
	switch s {
	case "true":
		return jsonvalue.Bool(true)
	case "false":
		return jsonvalue.Bool(false)
	case "null":
		return jsonvalue.Null()
	default:
		return jsonvalue.String(s)
	}
}

// charAt returns the byte at the cursor plus offset, or bytesource.EOF if
// that position is at or past the end of input. Mirrors
// JSONParser::get_char_at.
func (p *Parser) charAt(offset int) byte {
	pos := p.index + offset
	if pos < 0 || pos >= p.src.Len() {
		return bytesource.EOF
	}
	return p.src.At(pos)
}

// skipWhitespace advances the cursor past consecutive whitespace bytes.
func (p *Parser) skipWhitespace() {
	for isSpace(p.charAt(0)) {
		p.index++
	}
}

// scrollWhitespace returns the first idx' >= idx such that the byte at
// cursor+idx' is not whitespace, without moving the cursor.
func (p *Parser) scrollWhitespace(idx int) int {
	for isSpace(p.charAt(idx)) {
		idx++
	}
	return idx
}

// skipToByte returns the offset (relative to the cursor) of the first
// occurrence, at or after idx, of a byte in targets that is not preceded
// by an odd number of backslashes, or the distance to end of input if
// none is found.
func (p *Parser) skipToByte(targets map[byte]bool, idx int) int {
	backslashes := 0
	n := p.src.Len()
	for p.index+idx < n {
		c := p.charAt(idx)
		if c == '\\' {
			backslashes++
			idx++
			continue
		}
		if targets[c] && backslashes%2 == 0 {
			return idx
		}
		backslashes = 0
		idx++
	}
	return n - p.index
}

// enterNesting increments the recursion depth counter and reports
// whether nesting may continue: it returns false (and logs a diagnostic)
// once the configured depth limit is exceeded. Callers (object and array
// sub-parsers) must call exitNesting on every return path once
// enterNesting returned true.
func (p *Parser) enterNesting() bool {
	p.depth++
	if p.depth > p.depthLimit {
		p.log("maximum nesting depth exceeded, truncating this construct")
		p.depth--
		return false
	}
	return true
}

func (p *Parser) exitNesting() {
	p.depth--
}
