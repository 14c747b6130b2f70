package export

import (
	"crypto/md5"
	"slices"
	"sort"
	"strings"

	"github.com/jchantrell/doomarc/internal/archive"
)

// Entry is a lump prepared for a filtered package.
type Entry struct {
	Name      string
	Filter    string
	Extension string
	Data      []byte
}

// Path is the entry's location under filter/<filter>/<namespace>/.
func (e *Entry) Path(namespace string) string {
	name := strings.ToLower(e.Name)
	if e.Extension != "" {
		name += "." + e.Extension
	}
	if e.Filter == "" {
		return namespace + "/" + name
	}
	return "filter/" + e.Filter + "/" + namespace + "/" + name
}

// ConsolidateFilters merges one namespace taken from several games. Entries
// sharing a name and identical content collapse into one entry under the
// common prefix of their filters. When that prefix is already taken by
// another group of the same name, the duplicates keep their own filters.
func ConsolidateFilters(namespaces []map[string]*Entry) []*Entry {
	seen := make(map[string]bool)
	var names []string
	for _, ns := range namespaces {
		for name := range ns {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	var out []*Entry
	for _, name := range names {
		var entries []*Entry
		for _, ns := range namespaces {
			if e, ok := ns[name]; ok {
				entries = append(entries, e)
			}
		}
		if len(entries) == 1 {
			out = append(out, entries[0])
			continue
		}

		groups := groupByContent(entries)
		var used []string
		for _, dups := range groups {
			if len(dups) == 1 {
				out = append(out, dups[0])
				continue
			}

			filter := dups[0].Filter
			for _, d := range dups[1:] {
				filter = archive.CommonFilter(filter, d.Filter)
			}
			if slices.Contains(used, filter) {
				out = append(out, dups...)
				continue
			}
			used = append(used, filter)
			merged := *dups[0]
			merged.Filter = filter
			out = append(out, &merged)
		}
	}
	return out
}

// groupByContent groups entries by MD5 of their data, largest group first.
func groupByContent(entries []*Entry) [][]*Entry {
	index := make(map[[md5.Size]byte]int)
	var groups [][]*Entry
	for _, e := range entries {
		sum := md5.Sum(e.Data)
		i, ok := index[sum]
		if !ok {
			i = len(groups)
			index[sum] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], e)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i]) > len(groups[j])
	})
	return groups
}
