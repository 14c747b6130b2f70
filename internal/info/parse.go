package info

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads IWADINFO/MAPINFO style text:
//
//	IWad
//	{
//		Name = "DOOM Registered"
//		MustContain = "E1M1", "E2M1"
//	}
//
// Blocks may carry bare words before the brace and nest. A block made only
// of quoted lines becomes a list. Repeated blocks with the same name are
// kept in order.
func Parse(text string) (*Record, error) {
	p := &parser{lines: splitLines(StripComments(text))}
	rec, _, isList, err := p.body(0)
	if err != nil {
		return nil, err
	}
	if isList {
		return nil, fmt.Errorf("top level is a bare list")
	}
	return rec, nil
}

// ParseLump decodes a text lump and parses it.
func ParseLump(data []byte) (*Record, error) {
	return Parse(Decode(data))
}

type parser struct {
	lines []string
	pos   int
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (p *parser) line() (string, int) {
	return p.lines[p.pos], p.pos + 1
}

// body parses fields until the closing brace of the current block, or the
// end of input at depth 0.
func (p *parser) body(depth int) (*Record, []Value, bool, error) {
	rec := NewRecord()
	var list []Value

	for p.pos < len(p.lines) {
		line, lineNo := p.line()

		switch {
		case line == "}":
			if depth == 0 {
				return nil, nil, false, fmt.Errorf("line %d: unexpected }", lineNo)
			}
			p.pos++
			return p.finish(rec, list, lineNo)

		case strings.HasSuffix(line, "{"):
			p.pos++
			if err := p.block(rec, strings.TrimSpace(strings.TrimSuffix(line, "{")), depth, lineNo); err != nil {
				return nil, nil, false, err
			}

		case p.pos+1 < len(p.lines) && p.lines[p.pos+1] == "{":
			p.pos += 2
			if err := p.block(rec, line, depth, lineNo); err != nil {
				return nil, nil, false, err
			}

		case strings.HasPrefix(line, `"`):
			p.pos++
			list = append(list, String(unquote(line)))

		case strings.Contains(line, "="):
			p.pos++
			key, value, _ := strings.Cut(line, "=")
			value = strings.TrimSpace(value)
			for strings.HasSuffix(value, ",") && p.pos < len(p.lines) {
				value += p.lines[p.pos]
				p.pos++
			}
			rec.Set(strings.TrimSpace(key), parseValue(value))

		default:
			p.pos++
			rec.Set(line, Value{Kind: KindFlag})
		}
	}

	if depth > 0 {
		return nil, nil, false, fmt.Errorf("unexpected end of input inside block")
	}
	return p.finish(rec, list, len(p.lines))
}

func (p *parser) finish(rec *Record, list []Value, lineNo int) (*Record, []Value, bool, error) {
	if len(list) == 0 {
		return rec, nil, false, nil
	}
	if len(rec.keys) > 0 {
		return nil, nil, false, fmt.Errorf("line %d: block mixes fields and bare strings", lineNo)
	}
	return nil, list, true, nil
}

func (p *parser) block(parent *Record, head string, depth, lineNo int) error {
	words := strings.Fields(head)
	if len(words) == 0 {
		return fmt.Errorf("line %d: block without a name", lineNo)
	}

	sub, list, isList, err := p.body(depth + 1)
	if err != nil {
		return err
	}
	if isList {
		v := List(list...)
		v.Braced = true
		parent.Set(words[0], v)
		return nil
	}
	if len(words) > 1 {
		sub.Args = words[1:]
	}
	parent.AddBlock(words[0], sub)
	return nil
}

func parseValue(s string) Value {
	parts := splitValues(s)
	if len(parts) == 1 {
		return scalar(parts[0])
	}
	items := make([]Value, 0, len(parts))
	for _, part := range parts {
		items = append(items, scalar(part))
	}
	return List(items...)
}

func scalar(s string) Value {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `"`) {
		return String(unquote(s))
	}
	if i, err := strconv.Atoi(s); err == nil {
		return Int(i)
	}
	return String(s)
}

// splitValues splits on commas outside quoted strings.
func splitValues(s string) []string {
	var (
		parts  []string
		start  int
		quoted bool
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if quoted {
				i++
			}
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
