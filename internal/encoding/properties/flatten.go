package properties

import (
	"sort"

	"github.com/gssio/gss/internal/value"
)

// entry is a flattened key with its leaf value.
type entry struct {
	key string
	val value.Value
}

// flatten recursively flattens r into dotted keys, keeping the record order.
// A key that is already present shadows any later nested key of the same name.
func flatten(entries []entry, seen map[string]struct{}, r *value.Record, prefix, delimiter string) []entry {
	if prefix != "" {
		prefix += delimiter
	}
	r.Each(func(k string, v value.Value) bool {
		fullKey := prefix + k
		if nested := v.Record(); nested != nil && nested.Len() > 0 {
			entries = flatten(entries, seen, nested, fullKey, delimiter)
			return true
		}
		if _, ok := seen[fullKey]; ok {
			return true
		}
		seen[fullKey] = struct{}{}
		entries = append(entries, entry{key: fullKey, val: v})
		return true
	})
	return entries
}

// sortEntries orders entries by their full key, so the output is sorted
// as written rather than per nesting level.
func sortEntries(entries []entry, reversed bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		if reversed {
			return entries[i].key > entries[j].key
		}
		return entries[i].key < entries[j].key
	})
}
