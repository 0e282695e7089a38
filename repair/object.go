package repair

import (
	"github.com/repairkit/jrepair/bytesource"
	"github.com/repairkit/jrepair/jsoncontext"
	"github.com/repairkit/jrepair/jsonvalue"
)

// parseObject recovers an object value. Entered with the opening `{`
// already consumed.
func (p *Parser) parseObject() jsonvalue.Value {
	if !p.enterNesting() {
		return jsonvalue.ObjectValue(jsonvalue.NewObject())
	}
	defer p.exitNesting()

	start := p.index
	obj := jsonvalue.NewObject()

	for {
		c := p.charAt(0)
		if c == '}' || c == bytesource.EOF {
			break
		}

		p.skipWhitespace()
		if p.charAt(0) == ':' {
			p.log("`:` before a key")
			p.index++
		}

		p.ctx.Push(jsoncontext.ObjectKey)
		rollbackIndex := p.index

		var key string
		for {
			key = p.parseString()
			if key != "" {
				break
			}
			p.skipWhitespace()
			c := p.charAt(0)
			if c == ':' || c == '}' || c == bytesource.EOF {
				break
			}
		}

		if p.ctx.Contains(jsoncontext.Array) && obj.Has(key) {
			p.log("duplicate key, closing object and rolling back")
			p.ctx.Pop()
			p.index = rollbackIndex - 1
			break
		}

		p.skipWhitespace()
		if c := p.charAt(0); c == '}' || c == bytesource.EOF {
			p.ctx.Pop()
			continue
		}

		if p.charAt(0) != ':' {
			p.log("missed `:`")
		}
		p.index++

		p.ctx.Pop()
		p.ctx.Push(jsoncontext.ObjectValue)

		p.skipWhitespace()
		var value jsonvalue.Value
		if c := p.charAt(0); c == ',' || c == '}' {
			value = jsonvalue.String("")
		} else {
			value, _ = p.parseJSON()
		}
		p.ctx.Pop()

		obj.Set(key, value)

		if c := p.charAt(0); c == ',' || c == '\'' || c == '"' {
			p.index++
		}
		p.skipWhitespace()
	}

	p.index++

	if obj.Len() == 0 && p.index-start > 2 {
		p.log("empty object, trying as array")
		p.index = start
		return jsonvalue.Array(p.parseArray())
	}

	if p.ctx.Empty() {
		p.skipWhitespace()
		if p.charAt(0) == ',' {
			p.index++
			p.skipWhitespace()
			if _, ok := quoteAt(p, 0); ok {
				p.log("found a comma and string delimiter after object closing brace, checking for additional key-value pairs")
				sibling := p.parseObject()
				if siblingObj := sibling.AsObject(); siblingObj != nil {
					obj.Merge(siblingObj)
				}
			}
		}
	}

	return jsonvalue.ObjectValue(obj)
}
