package archive

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jchantrell/doomarc/internal/info"
)

// Identify works out which game the chain's IWAD is and sets the chain
// context from it. An IWAD carrying its own IWADINFO describes itself;
// otherwise the engine archive's IWADINFO is matched against the IWAD's
// lumps.
func (a *Archives) Identify() (*info.Record, error) {
	if len(a.readers) < 2 {
		return nil, fmt.Errorf("chain needs an engine archive and an iwad: %w", ErrUnknownIWad)
	}
	engine, iwad := a.readers[0], a.readers[1]

	id, err := IdentifyIWad(engine, iwad)
	if err != nil {
		return nil, err
	}

	ctx := Context{
		Game:     strings.ToLower(id.Str("Autoname")),
		GameType: strings.ToLower(id.Str("Game")),
	}
	if err := a.SetContext(ctx); err != nil {
		return nil, err
	}
	slog.Info("Identified iwad", "name", id.Str("Name"), "game", ctx.Game, "type", ctx.GameType)
	return id, nil
}

// IdentifyIWad returns the IWad record describing iwad without touching
// any context.
func IdentifyIWad(engine, iwad Reader) (*info.Record, error) {
	if own, err := readIwadinfo(iwad); err != nil {
		return nil, err
	} else if own != nil {
		if id, ok := info.SingleIWad(own); ok {
			return id, nil
		}
		if blocks := own.Blocks("IWad"); len(blocks) > 0 {
			return blocks[0], nil
		}
	}

	ref, err := readIwadinfo(engine)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, fmt.Errorf("%s has no iwadinfo: %w", engine.Path(), ErrUnknownIWad)
	}
	id, ok := info.Identify(ref, func(lump string) bool {
		return iwad.HasLump(lump, "*")
	})
	if !ok {
		return nil, fmt.Errorf("%s: %w", iwad.Path(), ErrUnknownIWad)
	}
	return id, nil
}

func readIwadinfo(r Reader) (*info.Record, error) {
	data, err := r.Lookup("iwadinfo")
	if err != nil {
		return nil, fmt.Errorf("reading iwadinfo from %s: %w", r.Path(), err)
	}
	if data == nil {
		return nil, nil
	}
	rec, err := info.ParseLump(data)
	if err != nil {
		return nil, fmt.Errorf("parsing iwadinfo from %s: %w", r.Path(), err)
	}
	return rec, nil
}
