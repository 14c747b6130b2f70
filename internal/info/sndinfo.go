package info

import "strings"

// Sndinfo holds the logical sound name to lump name assignments of a
// SNDINFO lump. Only commands that reference lumps are kept.
type Sndinfo struct {
	names []string
	lumps map[string]string
}

func ParseSndinfo(text string) *Sndinfo {
	s := &Sndinfo{lumps: make(map[string]string)}
	for _, line := range splitLines(StripComments(text)) {
		fields := strings.Fields(line)
		switch {
		case fields[0] == "$playersound" && len(fields) >= 5:
			s.set(fields[3], fields[4])
		case !strings.HasPrefix(fields[0], "$") && len(fields) >= 2:
			s.set(fields[0], fields[1])
		}
	}
	return s
}

func (s *Sndinfo) set(name, lump string) {
	name = unquote(name)
	if _, ok := s.lumps[name]; !ok {
		s.names = append(s.names, name)
	}
	s.lumps[name] = unquote(lump)
}

// Lump returns the lump assigned to a logical sound name.
func (s *Sndinfo) Lump(name string) (string, bool) {
	lump, ok := s.lumps[name]
	return lump, ok
}

// Names returns logical sound names in definition order.
func (s *Sndinfo) Names() []string {
	return append([]string(nil), s.names...)
}

// SoundLumps returns each distinct lump name referenced, in first use
// order.
func (s *Sndinfo) SoundLumps() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range s.names {
		lump := s.lumps[name]
		if !seen[lump] {
			seen[lump] = true
			out = append(out, lump)
		}
	}
	return out
}
