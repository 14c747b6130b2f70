package info

import (
	"strconv"
	"strings"
)

// String prints the record back in the same grammar Parse accepts.
func (r *Record) String() string {
	var b strings.Builder
	r.write(&b, 0)
	return strings.TrimSpace(b.String())
}

func (r *Record) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, key := range r.keys {
		v := r.fields[key]
		switch v.Kind {
		case KindBlocks:
			for _, block := range v.Blocks {
				b.WriteString(indent + key)
				if len(block.Args) > 0 {
					b.WriteString(" " + strings.Join(block.Args, " "))
				}
				b.WriteString("\n" + indent + "{\n")
				block.write(b, depth+1)
				b.WriteString(indent + "}\n")
				if depth == 0 {
					b.WriteString("\n")
				}
			}
		case KindList:
			if v.Braced {
				b.WriteString(indent + key + "\n" + indent + "{\n")
				for _, item := range v.List {
					b.WriteString(indent + "\t" + formatScalar(item) + "\n")
				}
				b.WriteString(indent + "}\n")
				if depth == 0 {
					b.WriteString("\n")
				}
				continue
			}
			items := make([]string, 0, len(v.List))
			for _, item := range v.List {
				items = append(items, formatScalar(item))
			}
			b.WriteString(indent + key + " = " + strings.Join(items, ", ") + "\n")
		case KindFlag:
			b.WriteString(indent + key + "\n")
		default:
			b.WriteString(indent + key + " = " + formatScalar(v) + "\n")
		}
	}
}

func formatScalar(v Value) string {
	if v.Kind == KindInt {
		return strconv.Itoa(v.Int)
	}
	return `"` + v.Str + `"`
}
