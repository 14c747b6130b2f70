package archive

import (
	"errors"
	"fmt"
)

// Archives is an ordered override chain of readers. Index 0 is the engine
// resource archive, index 1 the IWAD and the rest are PWADs. Later readers
// override earlier ones. Archives does not own its readers; use CloseAll
// when the caller has no other references to them.
type Archives struct {
	readers []Reader
	ctx     Context
}

func NewArchives(readers ...Reader) *Archives {
	return &Archives{readers: append([]Reader(nil), readers...)}
}

func (a *Archives) Readers() []Reader {
	return a.readers
}

func (a *Archives) Len() int {
	return len(a.readers)
}

// Headers concatenates the headers of every reader, earliest first.
func (a *Archives) Headers(nameGlob, namespaceGlob string) []LumpHeader {
	var headers []LumpHeader
	for _, r := range a.readers {
		headers = append(headers, r.Headers(nameGlob, namespaceGlob)...)
	}
	return headers
}

// Lookup returns the first non-empty lump named name, searching the last
// reader first. A miss is nil with no error.
func (a *Archives) Lookup(name string) ([]byte, error) {
	for i := len(a.readers) - 1; i >= 0; i-- {
		data, err := a.readers[i].Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("looking up %s in %s: %w", name, a.readers[i].Path(), err)
		}
		if len(data) > 0 {
			return data, nil
		}
	}
	return nil, nil
}

func (a *Archives) HasLump(nameGlob, namespaceGlob string) bool {
	for _, r := range a.readers {
		if r.HasLump(nameGlob, namespaceGlob) {
			return true
		}
	}
	return false
}

// Namespaces merges the namespace views of all readers so that the last
// header for each name wins.
func (a *Archives) Namespaces() Namespaced {
	out := make(Namespaced, len(Namespaces))
	for _, ns := range Namespaces {
		out[ns] = make(map[string]LumpHeader)
	}
	for _, r := range a.readers {
		for ns, lumps := range NamespacesOf(r) {
			if _, ok := out[ns]; !ok {
				out[ns] = make(map[string]LumpHeader)
			}
			for key, h := range lumps {
				out[ns][key] = h
			}
		}
	}
	return out
}

// Concat returns a new chain holding a's readers followed by the readers
// of each item, which may be a Reader or an *Archives. The joined readers
// take on a's context.
func (a *Archives) Concat(items ...any) (*Archives, error) {
	out := &Archives{readers: append([]Reader(nil), a.readers...), ctx: a.ctx}
	for _, item := range items {
		var joined []Reader
		switch item := item.(type) {
		case *Archives:
			joined = item.readers
		case Reader:
			joined = []Reader{item}
		default:
			return nil, fmt.Errorf("cannot join %T to an archive chain", item)
		}
		for _, r := range joined {
			if !a.ctx.IsZero() {
				r.SetContext(a.ctx)
			}
			out.readers = append(out.readers, r)
		}
	}
	return out, nil
}

// SetContext fixes the game context of the chain and every reader in it.
// Once set it can only be set again to the same value.
func (a *Archives) SetContext(ctx Context) error {
	if !a.ctx.IsZero() && a.ctx != ctx {
		return fmt.Errorf("setting %q over %q: %w", ctx.Game, a.ctx.Game, ErrContextSet)
	}
	a.ctx = ctx
	for _, r := range a.readers {
		r.SetContext(ctx)
	}
	return nil
}

func (a *Archives) Context() Context {
	return a.ctx
}

// CloseAll closes every reader in the chain.
func (a *Archives) CloseAll() error {
	var errs []error
	for _, r := range a.readers {
		if err := r.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", r.Path(), err))
		}
	}
	return errors.Join(errs...)
}
