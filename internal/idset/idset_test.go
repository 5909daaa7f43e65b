package idset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSetDedupes(t *testing.T) {
	s := MakeSet([]string{"a", "b", "a"})
	assert.Len(t, s, 2)
}

func TestMakeSliceIsSorted(t *testing.T) {
	s := MakeSet([]string{"c", "a", "b"})
	assert.Equal(t, OrderedSet{"a", "b", "c"}, MakeSlice(s))
}

func TestUnion(t *testing.T) {
	a := MakeSet([]string{"a", "b"})
	b := MakeSet([]string{"b", "c"})
	assert.Equal(t, OrderedSet{"a", "b", "c"}, MakeSlice(Union(a, b)))
}

func TestIntersection(t *testing.T) {
	a := MakeSet([]string{"a", "b", "c"})
	b := MakeSet([]string{"b", "c", "d"})
	assert.Equal(t, OrderedSet{"b", "c"}, MakeSlice(Intersection(a, b)))
}

func TestSubtract(t *testing.T) {
	a := MakeSet([]string{"a", "b", "c"})
	b := MakeSet([]string{"b"})
	assert.Equal(t, OrderedSet{"a", "c"}, MakeSlice(Subtract(a, b)))
}

func TestEqual(t *testing.T) {
	a := MakeSet([]string{"a", "b"})
	b := MakeSet([]string{"b", "a"})
	c := MakeSet([]string{"a"})
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestFormatterRendersSortedBracketedList(t *testing.T) {
	s := MakeSet([]string{"z", "a"})
	assert.Equal(t, "[a, z]", Format(s).String())
}

func TestFormatterEmptySet(t *testing.T) {
	assert.Equal(t, "[]", Format(Set{}).String())
}
