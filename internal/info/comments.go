package info

import "strings"

// StripComments removes // and /* */ comments, leaving quoted strings
// untouched. Each comment becomes a single space; newlines inside block
// comments are kept so line structure survives.
func StripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			end := closingQuote(text, i)
			b.WriteString(text[i:end])
			i = end - 1

		case strings.HasPrefix(text[i:], "//"):
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				end = len(text) - i
			}
			b.WriteByte(' ')
			i += end - 1

		case strings.HasPrefix(text[i:], "/*"):
			end := strings.Index(text[i+2:], "*/")
			var comment string
			if end < 0 {
				comment = text[i:]
				i = len(text)
			} else {
				comment = text[i : i+2+end+2]
				i += 2 + end + 1
			}
			b.WriteByte(' ')
			b.WriteString(strings.Repeat("\n", strings.Count(comment, "\n")))

		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// closingQuote returns the index just past the string literal starting at
// start, or len(text) when it is unterminated.
func closingQuote(text string, start int) int {
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(text)
}
