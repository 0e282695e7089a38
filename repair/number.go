package repair

import (
	"strconv"
	"strings"

	"github.com/repairkit/jrepair/bytesource"
	"github.com/repairkit/jrepair/jsoncontext"
	"github.com/repairkit/jrepair/jsonvalue"
)

// parseNumber recovers a numeric value starting at the cursor. A
// malformed literal that cannot be parsed as a number is preserved
// verbatim as a string rather than dropped.
func (p *Parser) parseNumber() jsonvalue.Value {
	start := p.index
	top, hasTop := p.ctx.Current()
	inArray := hasTop && top == jsoncontext.Array

	var sb strings.Builder
	for {
		c := p.charAt(0)
		if c == bytesource.EOF {
			break
		}
		if inArray && c == ',' {
			break
		}
		if !numberChars[c] {
			break
		}
		sb.WriteByte(c)
		p.index++
	}

	s := sb.String()

	strippedTrailing := false
	if n := len(s); n > 0 {
		switch s[n-1] {
		case '-', 'e', 'E', '/', ',':
			s = s[:n-1]
			p.index--
			strippedTrailing = true
		}
	}

	if !strippedTrailing && isAlpha(p.charAt(0)) {
		p.index = start
		return jsonvalue.String(p.parseString())
	}

	if strings.Contains(s, ",") {
		return jsonvalue.String(s)
	}

	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return jsonvalue.String(s)
		}
		return jsonvalue.Float(f)
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return jsonvalue.String(s)
	}
	return jsonvalue.Integer(i)
}
