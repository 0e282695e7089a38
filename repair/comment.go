package repair

import (
	"github.com/repairkit/jrepair/bytesource"
	"github.com/repairkit/jrepair/jsoncontext"
	"github.com/repairkit/jrepair/jsonvalue"
)

// parseComment consumes a comment-like construct and, if the context
// stack is empty afterwards, re-enters the driver; otherwise it returns
// the empty sentinel so the enclosing sub-parser continues.
func (p *Parser) parseComment() (jsonvalue.Value, bool) {
	terminators := map[byte]bool{'\n': true, '\r': true}
	if p.ctx.Contains(jsoncontext.Array) {
		terminators[']'] = true
	}
	if p.ctx.Contains(jsoncontext.ObjectValue) {
		terminators['}'] = true
	}
	if p.ctx.Contains(jsoncontext.ObjectKey) {
		terminators[':'] = true
	}

	switch {
	case p.charAt(0) == '#':
		p.skipToTerminator(terminators)

	case p.charAt(0) == '/' && p.charAt(1) == '/':
		p.index += 2
		p.skipToTerminator(terminators)

	case p.charAt(0) == '/' && p.charAt(1) == '*':
		p.index += 2
		for {
			if p.charAt(0) == bytesource.EOF {
				p.log("unclosed block comment")
				break
			}
			if p.charAt(0) == '*' && p.charAt(1) == '/' {
				p.index += 2
				break
			}
			p.index++
		}

	default:
		p.index++
	}

	if p.ctx.Empty() {
		return p.parseJSON()
	}
	return jsonvalue.Value{}, false
}

func (p *Parser) skipToTerminator(terminators map[byte]bool) {
	for {
		c := p.charAt(0)
		if c == bytesource.EOF || terminators[c] {
			return
		}
		p.index++
	}
}
