package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	cases := []struct {
		in   string
		want SemanticVersion
	}{
		{"1.2.3", SemanticVersion{1, 2, 3}},
		{"v1.2.3", SemanticVersion{1, 2, 3}},
		{"1", SemanticVersion{1, 0, 0}},
		{"1.2", SemanticVersion{1, 2, 0}},
		{"0.0.0", SemanticVersion{0, 0, 0}},
		{"v0", SemanticVersion{0, 0, 0}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []string{"", "v", "a.b.c", "1.2.3.4", "1..2", ".1.2", "1.2.", "-1.0.0"}
	for _, c := range cases {
		_, err := Parse(c)
		require.Error(t, err, c)
		var ive *InvalidVersionError
		assert.ErrorAs(t, err, &ive, c)
	}
}

func TestRoundTrip(t *testing.T) {
	// Property 6: parsing then printing yields a string that re-parses to
	// the same value.
	for _, s := range []string{"1.2.3", "v4.5.6", "0.0.1", "10.20.30"} {
		v, err := Parse(s)
		require.NoError(t, err)
		v2, err := Parse(v.String())
		require.NoError(t, err)
		assert.True(t, v.Equals(v2), s)
	}
}

func TestCompareTotalOrder(t *testing.T) {
	a := MustParse("1.0.0")
	b := MustParse("1.0.1")
	c := MustParse("1.1.0")
	d := MustParse("2.0.0")

	assert.Equal(t, Less, a.Compare(b))
	assert.Equal(t, Less, b.Compare(c))
	assert.Equal(t, Less, c.Compare(d))
	assert.Equal(t, Greater, d.Compare(a))
	assert.Equal(t, Equal, a.Compare(MustParse("1.0.0")))
}

func TestString(t *testing.T) {
	assert.Equal(t, "1.2.3", MustParse("1.2.3").String())
	assert.Equal(t, "1.0.0", MustParse("1").String())
}
