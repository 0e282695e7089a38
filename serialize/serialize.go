// Package serialize renders a jsonvalue.Value back to JSON text.
//
// Unlike the reference implementation's serializer, which emits string
// payloads unescaped (spec's documented "known limitation"), Encoder
// performs JSON string escaping: quotes, backslashes, \n, \r and \t get
// their two-character escapes, and other control bytes are written as
// \u00XX. Quotes, backslashes, \n, \r and \t survive a round trip through
// the repair parser; \u00XX escapes are not decoded by it. Floats are
// written in shortest form, so a Float with an integral value (1.0) is
// written as 1 and reads back as an Integer.
package serialize

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/repairkit/jrepair/jsonvalue"
)

// Encoder writes jsonvalue.Value trees as JSON text, optionally indented
// in two-space steps.
type Encoder struct {
	w      io.Writer
	indent bool
}

// NewEncoder returns an Encoder writing to w. Call WithIndent to enable
// pretty-printing.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WithIndent enables two-space indented output and returns e for chaining.
func (e *Encoder) WithIndent() *Encoder {
	e.indent = true
	return e
}

// Encode writes v to the underlying writer.
func (e *Encoder) Encode(v jsonvalue.Value) error {
	text, err := Marshal(v, e.indent)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

// Marshal renders v as JSON text. When indent is true, objects and
// arrays are rendered with two-space steps; otherwise output is compact.
func Marshal(v jsonvalue.Value, indent bool) ([]byte, error) {
	var sb strings.Builder
	if err := write(&sb, v, indent, 0); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func write(sb *strings.Builder, v jsonvalue.Value, indent bool, depth int) error {
	switch v.Kind() {
	case jsonvalue.KindNull:
		sb.WriteString("null")
	case jsonvalue.KindBool:
		if v.Bool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case jsonvalue.KindInteger:
		sb.WriteString(strconv.FormatInt(v.Integer(), 10))
	case jsonvalue.KindFloat:
		sb.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case jsonvalue.KindString:
		writeEscapedString(sb, v.Str())
	case jsonvalue.KindArray:
		return writeArray(sb, v.Items(), indent, depth)
	case jsonvalue.KindObject:
		return writeObject(sb, v.AsObject(), indent, depth)
	default:
		return fmt.Errorf("serialize: unknown value variant %s", v.Kind())
	}
	return nil
}

func writeArray(sb *strings.Builder, items []jsonvalue.Value, indent bool, depth int) error {
	if len(items) == 0 {
		sb.WriteString("[]")
		return nil
	}
	sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(',')
			if !indent {
				sb.WriteByte(' ')
			}
		}
		writeNewlineIndent(sb, indent, depth+1)
		if err := write(sb, item, indent, depth+1); err != nil {
			return err
		}
	}
	writeNewlineIndent(sb, indent, depth)
	sb.WriteByte(']')
	return nil
}

func writeObject(sb *strings.Builder, obj *jsonvalue.Object, indent bool, depth int) error {
	if obj == nil || obj.Len() == 0 {
		sb.WriteString("{}")
		return nil
	}
	sb.WriteByte('{')
	first := true
	var writeErr error
	obj.Range(func(key string, value jsonvalue.Value) bool {
		if !first {
			sb.WriteByte(',')
			if !indent {
				sb.WriteByte(' ')
			}
		}
		first = false
		writeNewlineIndent(sb, indent, depth+1)
		writeEscapedString(sb, key)
		sb.WriteByte(':')
		sb.WriteByte(' ')
		if err := write(sb, value, indent, depth+1); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}
	writeNewlineIndent(sb, indent, depth)
	sb.WriteByte('}')
	return nil
}

func writeNewlineIndent(sb *strings.Builder, indent bool, depth int) {
	if !indent {
		return
	}
	sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}

func writeEscapedString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}
