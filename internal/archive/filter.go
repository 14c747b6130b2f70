package archive

import "strings"

// Visible reports whether a lump with filter is visible for ctx. Filters
// are matched by plain prefix against the game string; game-<type>
// filters match the game type instead. The empty filter matches anything.
func Visible(filter string, ctx Context) bool {
	if filter == "" {
		return true
	}
	if t, ok := strings.CutPrefix(filter, "game-"); ok {
		return ctx.GameType != "" && strings.EqualFold(t, ctx.GameType)
	}
	return ctx.Game != "" && strings.HasPrefix(ctx.Game, filter)
}

// NormalizeFilter lower-cases a filter path segment and expands the
// doom.doom shorthand to doom.id.doom.
func NormalizeFilter(filter string) string {
	filter = strings.ToLower(filter)
	if strings.HasPrefix(filter, "doom.doom") {
		filter = "doom.id.doom" + strings.TrimPrefix(filter, "doom.doom")
	}
	return filter
}

// CommonFilter returns the longest shared run of leading dotted segments.
func CommonFilter(a, b string) string {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := 0
	for n < len(as) && n < len(bs) && as[n] == bs[n] {
		n++
	}
	return strings.Join(as[:n], ".")
}
