package value

import (
	"slices"
	"sort"
)

// Set is an ordered collection of distinct values, kept sorted by Compare.
type Set struct {
	elems []Value
}

// NewSet builds a set from vs, dropping duplicates.
func NewSet(vs ...Value) *Set {
	s, _ := BuildSet(vs)
	return s
}

// BuildSet sorts vs into a set in O(n log n). dups lists, ascending, the
// indexes in vs of elements equal to an earlier element.
func BuildSet(vs []Value) (s *Set, dups []int) {
	order := sortedIndexes(len(vs), func(a, b int) int { return Compare(vs[a], vs[b]) })
	s = &Set{elems: make([]Value, 0, len(vs))}
	for n, i := range order {
		if n > 0 && Compare(vs[order[n-1]], vs[i]) == 0 {
			dups = append(dups, i)
			continue
		}
		s.elems = append(s.elems, vs[i])
	}
	slices.Sort(dups)
	return s, dups
}

// sortedIndexes returns 0..n-1 stably sorted by cmp, so equal elements keep
// their input order.
func sortedIndexes(n int, cmp func(a, b int) int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, cmp)
	return order
}

func (*Set) Kind() Kind { return KindSet }

// Insert adds v and reports whether it was absent. Each insert is linear
// in the set size; use BuildSet for bulk construction.
func (s *Set) Insert(v Value) bool {
	i, found := s.search(v)
	if found {
		return false
	}
	s.elems = append(s.elems, nil)
	copy(s.elems[i+1:], s.elems[i:])
	s.elems[i] = v
	return true
}

// Contains reports whether an element equal to v is present.
func (s *Set) Contains(v Value) bool {
	_, found := s.search(v)
	return found
}

func (s *Set) search(v Value) (int, bool) {
	i := sort.Search(len(s.elems), func(i int) bool { return Compare(s.elems[i], v) >= 0 })
	return i, i < len(s.elems) && Compare(s.elems[i], v) == 0
}

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.Values()) }

// Values returns the elements in canonical order. The slice must not be modified.
func (s *Set) Values() []Value {
	if s == nil {
		return nil
	}
	return s.elems
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Primitive
	Value Value
}

// Map is an ordered map from primitive keys to values, sorted by key.
type Map struct {
	entries []Entry
}

// NewMap returns an empty map.
func NewMap() *Map { return &Map{} }

// BuildMap sorts entries into a map in O(n log n). dups lists, ascending,
// the indexes in entries whose key equals an earlier key; the earlier entry
// is kept.
func BuildMap(entries []Entry) (m *Map, dups []int) {
	order := sortedIndexes(len(entries), func(a, b int) int {
		return ComparePrimitive(entries[a].Key, entries[b].Key)
	})
	m = &Map{entries: make([]Entry, 0, len(entries))}
	for n, i := range order {
		if n > 0 && ComparePrimitive(entries[order[n-1]].Key, entries[i].Key) == 0 {
			dups = append(dups, i)
			continue
		}
		m.entries = append(m.entries, entries[i])
	}
	slices.Sort(dups)
	return m, dups
}

func (*Map) Kind() Kind { return KindMap }

// Insert adds the pair and reports whether k was absent. An existing key
// keeps its value. Each insert is linear in the map size; use BuildMap for
// bulk construction.
func (m *Map) Insert(k Primitive, v Value) bool {
	i, found := m.search(k)
	if found {
		return false
	}
	m.entries = append(m.entries, Entry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = Entry{Key: k, Value: v}
	return true
}

// Get returns the value stored under k.
func (m *Map) Get(k Primitive) (Value, bool) {
	i, found := m.search(k)
	if !found {
		return nil, false
	}
	return m.entries[i].Value, true
}

func (m *Map) search(k Primitive) (int, bool) {
	i := sort.Search(len(m.entries), func(i int) bool { return ComparePrimitive(m.entries[i].Key, k) >= 0 })
	return i, i < len(m.entries) && ComparePrimitive(m.entries[i].Key, k) == 0
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.Entries()) }

// Entries returns the pairs in key order. The slice must not be modified.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}
