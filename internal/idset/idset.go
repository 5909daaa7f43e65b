// Package idset provides small set utilities over mod/entrypoint id
// strings (adapted from the teacher's app/core/sets package, which backed
// its bisection search's candidate-set bookkeeping). Here sets track
// things like "which entrypoint names are declared but not registered" or
// "which mod ids recommend each other" for diagnostics formatting.
package idset

import (
	"sort"
	"strings"
)

// Set is a collection of unique id strings.
type Set map[string]struct{}

// OrderedSet is a sorted, de-duplicated slice of ids, as produced by
// MakeSlice.
type OrderedSet []string

// MakeSet converts a slice of ids into a Set, removing duplicates.
func MakeSet(ids []string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// MakeSlice converts s into a sorted OrderedSet.
func MakeSlice(s Set) OrderedSet {
	out := make(OrderedSet, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Union returns every id present in a or b.
func Union(a, b Set) Set {
	out := make(Set, len(a)+len(b))
	for id := range a {
		out[id] = struct{}{}
	}
	for id := range b {
		out[id] = struct{}{}
	}
	return out
}

// Intersection returns every id present in both a and b.
func Intersection(a, b Set) Set {
	if len(a) > len(b) {
		a, b = b, a
	}
	out := make(Set)
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Subtract returns every id in a that is not also in b.
func Subtract(a, b Set) Set {
	out := make(Set)
	for id := range a {
		if _, ok := b[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Equal reports whether a and b contain exactly the same ids.
func Equal(a, b Set) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

// Formatter lazily renders a Set as a sorted, bracketed list; the sort
// and join only happen when String() is actually called, so it is cheap
// to pass to a logging call that may be filtered out by log level.
type Formatter struct {
	set Set
}

// Format returns a Formatter wrapping set.
func Format(set Set) Formatter {
	return Formatter{set: set}
}

func (f Formatter) String() string {
	if len(f.set) == 0 {
		return "[]"
	}
	return "[" + strings.Join(MakeSlice(f.set), ", ") + "]"
}
