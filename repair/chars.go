package repair

// ASCII classification helpers. The parser operates on raw bytes, not
// runes: the reference implementation classifies by <cctype> semantics,
// which only ever examine the low 7 bits.

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// numberChars is the character class from spec §3 "Number bytes".
var numberChars = map[byte]bool{
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
	'-': true, '.': true, 'e': true, 'E': true, '/': true, ',': true,
}

// leftCurlyQuote and rightCurlyQuote are the UTF-8 encodings of U+201C
// and U+201D, the two multi-byte string delimiters from spec §3.
var (
	leftCurlyQuote  = []byte{0xE2, 0x80, 0x9C}
	rightCurlyQuote = []byte{0xE2, 0x80, 0x9D}
)

// quote describes a matched string delimiter: its byte width (1 for '"'
// and '\'', 3 for the curly quotes) and, for curly quotes, which side it
// represents. b holds the literal byte for width-1 delimiters.
type quote struct {
	width int
	curly bool
	left  bool // meaningful only when curly is true
	b     byte // meaningful only when width == 1
}

// closingSeq returns the byte sequence that closes a string opened with q.
func closingSeq(q quote) []byte {
	if q.curly {
		return rightCurlyQuote
	}
	return []byte{q.b}
}

// matchesClose reports whether the delimiter that closes q appears at
// offset (relative to the parser's cursor).
func matchesClose(p *Parser, offset int, q quote) bool {
	return matchesAt(p, offset, closingSeq(q))
}

func matchesAt(p *Parser, offset int, seq []byte) bool {
	for i, want := range seq {
		if p.charAt(offset+i) != want {
			return false
		}
	}
	return true
}

// quoteAt reports the string delimiter starting at offset (relative to
// the parser's cursor), if any.
func quoteAt(p *Parser, offset int) (quote, bool) {
	b := p.charAt(offset)
	switch b {
	case '"', '\'':
		return quote{width: 1, b: b}, true
	case 0xE2:
		if matchesAt(p, offset, leftCurlyQuote) {
			return quote{width: 3, curly: true, left: true}, true
		}
		if matchesAt(p, offset, rightCurlyQuote) {
			return quote{width: 3, curly: true, left: false}, true
		}
	}
	return quote{}, false
}
