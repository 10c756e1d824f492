package value

import (
	"sort"
)

// Record is a mapping from string keys to values that remembers insertion order.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: map[string]Value{}}
}

// Set stores v under key. Setting an existing key replaces its value
// without moving it.
func (r *Record) Set(key string, v Value) *Record {
	if r.values == nil {
		r.values = map[string]Value{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in the requested order: insertion order, or sorted
// lexicographically when sorted is set. reversed only applies to sorted keys.
func (r *Record) Keys(sorted, reversed bool) []string {
	if r == nil {
		return []string{}
	}
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	if sorted {
		SortStrings(keys, reversed)
	}
	return keys
}

// Each calls fn for every key in insertion order until fn returns false.
func (r *Record) Each(fn func(key string, v Value) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Equal reports whether both records hold the same keys in the same order
// with equal values.
func (r *Record) Equal(o *Record) bool {
	if r.Len() != o.Len() {
		return false
	}
	if r.Len() == 0 {
		return true
	}
	for i, k := range r.keys {
		if o.keys[i] != k {
			return false
		}
		if !r.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}

// SortKeys returns a deep copy with keys sorted at every level.
func (r *Record) SortKeys(reversed bool) *Record {
	out := NewRecord()
	for _, k := range r.Keys(true, reversed) {
		out.Set(k, r.values[k].SortKeys(reversed))
	}
	return out
}

// SortStrings sorts keys in place, in descending order when reversed.
func SortStrings(keys []string, reversed bool) {
	if reversed {
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
		return
	}
	sort.Strings(keys)
}
