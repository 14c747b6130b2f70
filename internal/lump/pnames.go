package lump

import (
	"fmt"
	"strings"
)

// PNames is the ordered patch name table referenced by TEXTUREx lumps.
type PNames []string

func DecodePNames(data []byte) (PNames, error) {
	c := newCursor(data)
	count := c.u32()
	if c.short || uint64(count)*8+4 > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %d entries in %d bytes", ErrPNamesSanity, count, len(data))
	}

	names := make(PNames, count)
	for i := range names {
		names[i] = c.name()
	}
	return names, nil
}

// Index returns the position of name, compared case-insensitively, or -1.
func (p PNames) Index(name string) int {
	for i, n := range p {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

func (p PNames) Contains(name string) bool {
	return p.Index(name) >= 0
}
