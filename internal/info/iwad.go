package info

// Identify returns the first IWad block of an IWADINFO record whose
// MustContain lumps are all present according to has. A block without
// MustContain always matches.
func Identify(iwadinfo *Record, has func(lump string) bool) (*Record, bool) {
	for _, iwad := range iwadinfo.Blocks("IWad") {
		matched := true
		for _, lump := range iwad.Get("MustContain").Strings() {
			if !has(lump) {
				matched = false
				break
			}
		}
		if matched {
			return iwad, true
		}
	}
	return nil, false
}

// SingleIWad returns the IWad record of an IWADINFO lump that describes
// exactly one game, as shipped inside standalone IPK3s.
func SingleIWad(iwadinfo *Record) (*Record, bool) {
	blocks := iwadinfo.Blocks("IWad")
	if len(blocks) != 1 {
		return nil, false
	}
	return blocks[0], true
}

// WrapIWad builds an IWADINFO document holding only iwad.
func WrapIWad(iwad *Record) *Record {
	doc := NewRecord()
	doc.AddBlock("IWad", iwad)
	return doc
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	out := NewRecord()
	out.Args = append([]string(nil), r.Args...)
	for _, key := range r.keys {
		out.Set(key, r.fields[key].clone())
	}
	return out
}

func (v Value) clone() Value {
	out := v
	if v.List != nil {
		out.List = make([]Value, len(v.List))
		for i, item := range v.List {
			out.List[i] = item.clone()
		}
	}
	if v.Blocks != nil {
		out.Blocks = make([]*Record, len(v.Blocks))
		for i, block := range v.Blocks {
			out.Blocks[i] = block.Clone()
		}
	}
	return out
}
