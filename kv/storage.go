package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map but
// uses linear search instead, which proves to be more efficient on relatively low amount of
// entries, which often enough is the case for headers, cookies and form params. Keys are
// compared case-insensitively unless created via NewCaseSensitive, and pairs keep their
// insertion order.
type Storage struct {
	pairs         []Pair
	caseSensitive bool
}

func New() *Storage {
	return new(Storage)
}

// NewCaseSensitive returns an instance comparing keys exactly, as cookie names are.
func NewCaseSensitive() *Storage {
	return &Storage{caseSensitive: true}
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// Add adds a new pair of key and value, even if the key is already presented.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Set overrides the value of the key. The pair keeps the position of the first entry with
// the same key, all the other entries are dropped. If there's no such key, the pair is
// appended.
func (s *Storage) Set(key, value string) *Storage {
	for i := range s.pairs {
		if s.equal(s.pairs[i].Key, key) {
			s.pairs[i] = Pair{Key: key, Value: value}
			s.deleteFrom(i+1, key)
			return s
		}
	}

	return s.Add(key, value)
}

// Merge sets every pair of the other storage, so on conflicts values of other win.
func (s *Storage) Merge(other *Storage) *Storage {
	if other == nil {
		return s
	}

	for _, pair := range other.pairs {
		s.Set(pair.Key, pair.Value)
	}

	return s
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If it wasn't, it'll
// be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if s.equal(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Pairs returns an iterator over the pairs in insertion order.
func (s *Storage) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// Delete removes all the entries of the key.
func (s *Storage) Delete(key string) *Storage {
	s.deleteFrom(0, key)
	return s
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clone creates a deep copy, which may be used later or stored somewhere safely.
func (s *Storage) Clone() *Storage {
	return &Storage{
		pairs:         clone(s.pairs),
		caseSensitive: s.caseSensitive,
	}
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func (s *Storage) deleteFrom(offset int, key string) {
	kept := s.pairs[:offset]
	for _, pair := range s.pairs[offset:] {
		if !s.equal(pair.Key, key) {
			kept = append(kept, pair)
		}
	}

	s.pairs = kept
}

func (s *Storage) equal(a, b string) bool {
	if s.caseSensitive {
		return a == b
	}

	return strcomp.EqualFold(a, b)
}

func clone[T any](source []T) []T {
	if len(source) == 0 {
		return nil
	}

	newSlice := make([]T, len(source))
	copy(newSlice, source)

	return newSlice
}
