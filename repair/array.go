package repair

import (
	"github.com/repairkit/jrepair/bytesource"
	"github.com/repairkit/jrepair/jsoncontext"
	"github.com/repairkit/jrepair/jsonvalue"
)

// parseArray recovers an array value. Entered with the opening `[`
// already consumed.
func (p *Parser) parseArray() []jsonvalue.Value {
	if !p.enterNesting() {
		return nil
	}
	defer p.exitNesting()

	p.ctx.Push(jsoncontext.Array)

	var items []jsonvalue.Value

	for {
		c := p.charAt(0)
		if c == ']' || c == '}' || c == bytesource.EOF {
			break
		}

		p.skipWhitespace()

		var value jsonvalue.Value
		var ok bool
		if q, isDelim := quoteAt(p, 0); isDelim {
			// Look ahead past the matching closing delimiter (not just
			// past the opening one) before deciding whether this quoted
			// token opens an object key, mirroring
			// parse_array.cpp's skip_to_character/scroll_whitespaces pair.
			closeSeq := closingSeq(q)
			i := p.skipToByte(map[byte]bool{closeSeq[len(closeSeq)-1]: true}, q.width)
			after := p.scrollWhitespace(i + 1)
			if p.charAt(after) == ':' {
				value, ok = p.parseObject(), true
			} else {
				value, ok = jsonvalue.String(p.parseString()), true
			}
		} else {
			value, ok = p.parseJSON()
		}

		if !ok {
			p.index++
			continue
		}

		if value.Kind() == jsonvalue.KindString && value.Str() == "..." && p.charAt(-1) == '.' {
			p.log("stray `...`")
		} else {
			items = append(items, value)
		}

		for {
			c := p.charAt(0)
			if isSpace(c) || c == ',' {
				p.index++
				continue
			}
			break
		}
	}

	if p.charAt(0) != ']' {
		p.log("unclosed array")
	}
	p.index++
	p.ctx.Pop()

	return items
}
