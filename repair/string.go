package repair

import (
	"strings"

	"github.com/repairkit/jrepair/bytesource"
	"github.com/repairkit/jrepair/jsoncontext"
)

// parseString recovers a string value starting at the cursor. It
// returns the empty sentinel ("") when no value could be produced; a
// legitimate empty string and "no value" are not distinguished at this
// layer (see the package's sentinel-overloading design note).
func (p *Parser) parseString() string {
	if c := p.charAt(0); c == '#' || c == '/' {
		return ""
	}

	// Step 2: skip stray punctuation - bytes that are neither a string
	// delimiter nor alphanumeric.
	for {
		c := p.charAt(0)
		if c == bytesource.EOF {
			break
		}
		if _, ok := quoteAt(p, 0); ok {
			break
		}
		if isAlnum(c) {
			break
		}
		p.index++
	}
	if p.charAt(0) == bytesource.EOF {
		return ""
	}

	missingQuotes := false
	var open quote

	c := p.charAt(0)
	q, isQuote := quoteAt(p, 0)
	switch {
	case isQuote:
		open = q
	case isAlnum(c):
		top, hasTop := p.ctx.Current()
		inObjectKey := hasTop && top == jsoncontext.ObjectKey
		lower := toLower(c)
		if !inObjectKey && (lower == 't' || lower == 'f' || lower == 'n') {
			if literal, ok := p.matchKeyword(); ok {
				return literal
			}
		}
		missingQuotes = true
	default:
		missingQuotes = true
	}

	if !missingQuotes {
		p.index += open.width

		// Step 6: doubled-quote start.
		if again, ok := quoteAt(p, 0); ok && sameDelimiter(open, again) {
			handled, consumed := p.handleDoubledQuoteStart(open)
			if handled {
				if consumed {
					return ""
				}
			}
		}
	}

	var sb strings.Builder
	doubled := p.doubledMode

	for {
		c := p.charAt(0)
		if c == bytesource.EOF {
			break
		}

		if missingQuotes {
			top, hasTop := p.ctx.Current()
			if hasTop && top == jsoncontext.ObjectKey && (c == ':' || isSpace(c)) {
				break
			}
			if hasTop && top == jsoncontext.Array && (c == ']' || c == ',') {
				break
			}
			if hasTop && top == jsoncontext.ObjectValue && (c == '}' || c == ',') {
				break
			}
		}

		if !missingQuotes {
			if _, ok := quoteAt(p, 0); ok && matchesClose(p, 0, open) {
				if doubled {
					if next, ok := quoteAt(p, open.width); ok && sameDelimiter(open, next) {
						p.index += open.width * 2
						break
					}
					sb.WriteByte(c)
					p.index += open.width
					continue
				}
				if p.isPrematureDelimiter(open) {
					sb.WriteByte(c)
					p.index += open.width
					continue
				}
				p.index += open.width
				break
			}
		}

		if c == '\\' {
			next := p.charAt(1)
			switch next {
			case 't':
				sb.WriteByte('\t')
				p.index += 2
				continue
			case 'n':
				sb.WriteByte('\n')
				p.index += 2
				continue
			case 'r':
				sb.WriteByte('\r')
				p.index += 2
				continue
			case 'b':
				sb.WriteByte('\b')
				p.index += 2
				continue
			case '\\':
				sb.WriteByte('\\')
				p.index += 2
				continue
			default:
				if ok := matchesClose(p, 1, open); !missingQuotes && ok {
					sb.Write(closingSeq(open))
					p.index += 1 + open.width
					continue
				}
			}
		}

		sb.WriteByte(c)
		p.index++
	}

	p.doubledMode = false

	result := sb.String()
	if p.streamStable {
		if strings.HasSuffix(result, "\\") && !strings.HasSuffix(result, "\\\\") {
			result = strings.TrimSuffix(result, "\\")
		}
	} else {
		result = strings.TrimRight(result, " \t\n\v\f\r")
	}

	if missingQuotes {
		top, hasTop := p.ctx.Current()
		if hasTop && top == jsoncontext.ObjectKey {
			idx := p.scrollWhitespace(0)
			p.index += idx
			if n := p.charAt(0); n != ':' && n != ',' {
				return ""
			}
		}
	}

	return result
}

// sameDelimiter reports whether a and b open/close the same string
// (same width and same byte; any two curly quotes, left or right, count
// as the same delimiter).
func sameDelimiter(a, b quote) bool {
	if a.width != b.width {
		return false
	}
	if a.curly || b.curly {
		return a.curly && b.curly
	}
	return a.b == b.b
}

// matchKeyword attempts to match true/false/null at the cursor,
// case-insensitive on the first letter only. On success it advances past
// the keyword and returns the canonical lowercase literal.
func (p *Parser) matchKeyword() (string, bool) {
	candidates := []string{"true", "false", "null"}
	for _, kw := range candidates {
		if toLower(p.charAt(0)) != kw[0] {
			continue
		}
		matched := true
		for i := 1; i < len(kw); i++ {
			if p.charAt(i) != kw[i] {
				matched = false
				break
			}
		}
		if matched {
			p.index += len(kw)
			return kw, true
		}
	}
	return "", false
}

// handleDoubledQuoteStart implements step 6: it decides, from the bytes
// immediately following a repeated opening delimiter, whether this is an
// empty string, the start of a doubled-delimited string, or a mistaken
// stray delimiter. It returns (handled, consumedAsEmpty): handled is
// true whenever it dealt with the repeated delimiter itself (the caller
// must not re-examine it); consumedAsEmpty is true when the string is
// already complete (empty string case).
func (p *Parser) handleDoubledQuoteStart(open quote) (handled bool, consumedAsEmpty bool) {
	afterSecond := open.width
	if next, ok := quoteAt(p, afterSecond); ok && matchesClose(p, afterSecond, open) && next.width == open.width {
		// next-next is right delimiter: doubled-delimited string begins.
		p.index += open.width
		p.doubledMode = true
		return true, false
	}

	idx := p.scrollWhitespace(afterSecond)
	nc := p.charAt(idx)
	if _, ok := quoteAt(p, idx); ok || nc == '{' || nc == '[' {
		p.index += open.width
		return true, true
	}
	if nc == ',' || nc == '}' || nc == ']' {
		p.index += open.width
		return true, true
	}

	// Treat one quote as mistaken: consume it and continue accumulating.
	p.index += open.width
	return true, false
}

// isPrematureDelimiter implements step 9: scans ahead from an unescaped
// closing delimiter for a structural terminator appropriate to the
// active context. If none appears before the next delimiter, the
// delimiter just seen is treated as a literal byte inside the string.
func (p *Parser) isPrematureDelimiter(open quote) bool {
	top, hasTop := p.ctx.Current()
	if !hasTop {
		return false
	}

	offset := open.width
	sawAlpha := false
	for {
		c := p.charAt(offset)
		if c == bytesource.EOF {
			return true
		}
		if q, ok := quoteAt(p, offset); ok && matchesClose(p, offset, q) {
			return true
		}
		switch top {
		case jsoncontext.ObjectKey:
			if c == ':' || c == '}' {
				return false
			}
		case jsoncontext.ObjectValue:
			if c == '}' {
				return false
			}
			if c == ',' && !sawAlpha {
				return false
			}
		case jsoncontext.Array:
			if c == ']' || c == ',' {
				return false
			}
		}
		if isAlpha(c) {
			sawAlpha = true
		}
		offset++
	}
}
