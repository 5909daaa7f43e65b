package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstraintPrefixes(t *testing.T) {
	cases := []struct {
		in       string
		wantKind ConstraintKind
	}{
		{"", Any},
		{"*", Any},
		{">=1.0.0", Gte},
		{"<=1.0.0", Lte},
		{">1.0.0", Gt},
		{"<1.0.0", Lt},
		{"^1.0.0", Caret},
		{"~1.2.0", Tilde},
		{"=1.0.0", EqualsKind},
		{"1.0.0", EqualsKind},
	}
	for _, c := range cases {
		got, err := ParseConstraint(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.wantKind, got.Kind, c.in)
	}
}

func TestParseConstraintAmbiguousPrefixOrder(t *testing.T) {
	// ">=" must not be misparsed as ">" followed by "=1.0.0".
	c, err := ParseConstraint(">=1.0.0")
	require.NoError(t, err)
	assert.Equal(t, Gte, c.Kind)
	assert.True(t, c.Version.Equals(MustParse("1.0.0")))
}

func TestSatisfiesAny(t *testing.T) {
	v := MustParse("5.6.7")
	assert.True(t, Satisfies(v, AnyConstraint()))
}

func TestSatisfiesEquals(t *testing.T) {
	v := MustParse("1.2.3")
	c, err := ParseConstraint("=1.2.3")
	require.NoError(t, err)
	assert.True(t, Satisfies(v, c))
	assert.True(t, Satisfies(MustParse("1.2.3"), VersionConstraint{Kind: EqualsKind, Version: v}))
}

func TestSatisfiesRelational(t *testing.T) {
	gte, _ := ParseConstraint(">=1.2.0")
	gt, _ := ParseConstraint(">1.2.0")
	lte, _ := ParseConstraint("<=1.2.0")
	lt, _ := ParseConstraint("<1.2.0")

	assert.True(t, Satisfies(MustParse("1.2.0"), gte))
	assert.True(t, Satisfies(MustParse("1.3.0"), gte))
	assert.False(t, Satisfies(MustParse("1.1.0"), gte))

	assert.False(t, Satisfies(MustParse("1.2.0"), gt))
	assert.True(t, Satisfies(MustParse("1.2.1"), gt))

	assert.True(t, Satisfies(MustParse("1.2.0"), lte))
	assert.False(t, Satisfies(MustParse("1.2.1"), lte))

	assert.False(t, Satisfies(MustParse("1.2.0"), lt))
	assert.True(t, Satisfies(MustParse("1.1.9"), lt))
}

func TestSatisfiesCaret(t *testing.T) {
	c, err := ParseConstraint("^1.2.0")
	require.NoError(t, err)
	assert.True(t, Satisfies(MustParse("1.2.0"), c))
	assert.True(t, Satisfies(MustParse("1.9.9"), c))
	assert.False(t, Satisfies(MustParse("2.0.0"), c))
	assert.False(t, Satisfies(MustParse("1.1.9"), c))
}

func TestSatisfiesTilde(t *testing.T) {
	c, err := ParseConstraint("~1.2.0")
	require.NoError(t, err)
	assert.True(t, Satisfies(MustParse("1.2.0"), c))
	assert.True(t, Satisfies(MustParse("1.2.9"), c))
	assert.False(t, Satisfies(MustParse("1.3.0"), c))
	assert.False(t, Satisfies(MustParse("1.1.9"), c))
}

func TestParseConstraintInvalid(t *testing.T) {
	_, err := ParseConstraint(">=not-a-version")
	require.Error(t, err)
	var ice *InvalidConstraintError
	assert.ErrorAs(t, err, &ice)
}

func TestConstraintStringRoundTrip(t *testing.T) {
	for _, s := range []string{"*", ">=1.0.0", "<=1.0.0", ">1.0.0", "<1.0.0", "^1.0.0", "~1.0.0"} {
		c, err := ParseConstraint(s)
		require.NoError(t, err)
		assert.Equal(t, s, c.String())
	}
}
