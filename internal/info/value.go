package info

import "strconv"

// Kind discriminates the shapes a field can take.
type Kind int

const (
	KindList Kind = iota
	KindString
	KindInt
	KindFlag
	KindBlocks
)

// Value is a field of a Record. The zero Value is an empty list, which is
// what Get returns for a missing key.
type Value struct {
	Kind   Kind
	Str    string
	Int    int
	List   []Value
	Blocks []*Record

	// Braced is set on lists that were written as a brace block of quoted
	// lines rather than a key = a, b assignment.
	Braced bool
}

func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func Int(i int) Value {
	return Value{Kind: KindInt, Int: i}
}

func List(items ...Value) Value {
	return Value{Kind: KindList, List: items}
}

// Strings flattens a scalar or list value into its string items. Integers
// are formatted in decimal.
func (v Value) Strings() []string {
	switch v.Kind {
	case KindString:
		return []string{v.Str}
	case KindInt:
		return []string{strconv.Itoa(v.Int)}
	case KindList:
		out := make([]string, 0, len(v.List))
		for _, item := range v.List {
			out = append(out, item.Strings()...)
		}
		return out
	}
	return nil
}

// IsEmpty reports whether v is an empty list.
func (v Value) IsEmpty() bool {
	return v.Kind == KindList && len(v.List) == 0
}

// Record is a brace block: ordered fields plus the bare words that preceded
// the opening brace.
type Record struct {
	Args   []string
	keys   []string
	fields map[string]Value
}

func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Get returns the value for key, or an empty list when key is absent.
func (r *Record) Get(key string) Value {
	if v, ok := r.fields[key]; ok {
		return v
	}
	return Value{}
}

func (r *Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Set replaces the value for key, keeping its original position.
func (r *Record) Set(key string, v Value) {
	if _, ok := r.fields[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = v
}

// Keys returns field names in the order they were first set.
func (r *Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Blocks returns the nested records stored under key, in source order.
func (r *Record) Blocks(key string) []*Record {
	return r.Get(key).Blocks
}

// AddBlock appends a nested record under key.
func (r *Record) AddBlock(key string, block *Record) {
	v := r.Get(key)
	if v.Kind != KindBlocks {
		v = Value{Kind: KindBlocks}
	}
	v.Blocks = append(v.Blocks, block)
	r.Set(key, v)
}

// Str returns the string value of key, or "" when it is not a string.
func (r *Record) Str(key string) string {
	v := r.Get(key)
	if v.Kind != KindString {
		return ""
	}
	return v.Str
}

// Int returns the integer value of key.
func (r *Record) Int(key string) (int, bool) {
	v := r.Get(key)
	if v.Kind != KindInt {
		return 0, false
	}
	return v.Int, true
}
