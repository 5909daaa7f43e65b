package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alloy-modding/alloy-loader/internal/manifest"
	"github.com/alloy-modding/alloy-loader/internal/version"
)

func candidate(id, ver string, deps map[string]string) manifest.ModCandidate {
	constraints := make(map[string]version.VersionConstraint, len(deps))
	for k, v := range deps {
		c, err := version.ParseConstraint(v)
		if err != nil {
			panic(err)
		}
		constraints[k] = c
	}
	return manifest.ModCandidate{
		Metadata: manifest.ModMetadata{
			ID:           id,
			Name:         id,
			Version:      version.MustParse(ver),
			Entrypoint:   id + ".Entry",
			Environment:  manifest.EnvironmentBoth,
			Dependencies: constraints,
			Recommends:   map[string]version.VersionConstraint{},
			Breaks:       map[string]version.VersionConstraint{},
		},
		ArchivePath: id + ".jar",
	}
}

func ids(candidates []manifest.ModCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Metadata.ID
	}
	return out
}

var (
	host   = version.MustParse("1.21.4")
	loader = version.MustParse("0.1.0")
)

// S1 — linear chain.
func TestResolveLinearChain(t *testing.T) {
	candidates := []manifest.ModCandidate{
		candidate("mod-c", "1.0.0", map[string]string{"mod-b": ">=1.0.0"}),
		candidate("mod-a", "1.0.0", nil),
		candidate("mod-b", "1.0.0", map[string]string{"mod-a": ">=1.0.0"}),
	}
	out, err := Resolve(candidates, DefaultReservedIDs(), host, loader)
	require.NoError(t, err)
	assert.Equal(t, []string{"mod-a", "mod-b", "mod-c"}, ids(out))
}

// S2 — independent mods, determinism.
func TestResolveIndependentDeterministic(t *testing.T) {
	candidates := []manifest.ModCandidate{
		candidate("mod-b", "1.0.0", nil),
		candidate("mod-a", "1.0.0", nil),
	}
	out, err := Resolve(candidates, DefaultReservedIDs(), host, loader)
	require.NoError(t, err)
	assert.Equal(t, []string{"mod-a", "mod-b"}, ids(out))
}

// S3 — missing dependency.
func TestResolveMissingDependency(t *testing.T) {
	candidates := []manifest.ModCandidate{
		candidate("my-mod", "1.0.0", map[string]string{"missing-lib": ">=1.0.0"}),
	}
	_, err := Resolve(candidates, DefaultReservedIDs(), host, loader)
	require.Error(t, err)
	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Violations, 1)
	md, ok := re.Violations[0].(*MissingDependency)
	require.True(t, ok)
	assert.Equal(t, "my-mod", md.RequestedBy)
	assert.Equal(t, "missing-lib", md.MissingID)
	assert.Equal(t, ">=1.0.0", md.Constraint)
}

// S4 — host incompatibility.
func TestResolveHostIncompatible(t *testing.T) {
	candidates := []manifest.ModCandidate{
		candidate("my-mod", "1.0.0", map[string]string{"minecraft": ">=1.22.0"}),
	}
	_, err := Resolve(candidates, DefaultReservedIDs(), host, loader)
	require.Error(t, err)
	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Violations, 1)
	hi, ok := re.Violations[0].(*HostIncompatible)
	require.True(t, ok)
	assert.Equal(t, "my-mod", hi.ModID)
	assert.Equal(t, ">=1.22.0", hi.Constraint)
	assert.Equal(t, "1.21.4", hi.Actual)
}

// S5 — cycle.
func TestResolveCircularDependency(t *testing.T) {
	candidates := []manifest.ModCandidate{
		candidate("mod-a", "1.0.0", map[string]string{"mod-b": "*"}),
		candidate("mod-b", "1.0.0", map[string]string{"mod-a": "*"}),
	}
	_, err := Resolve(candidates, DefaultReservedIDs(), host, loader)
	require.Error(t, err)
	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Violations, 1)
	cd, ok := re.Violations[0].(*CircularDependency)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"mod-a", "mod-b"}, uniqueIDsInCycle(cd.Cycle))
}

func uniqueIDsInCycle(cycle []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range cycle {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func TestResolveDuplicateID(t *testing.T) {
	candidates := []manifest.ModCandidate{
		candidate("dup-mod", "1.0.0", nil),
		candidate("dup-mod", "2.0.0", nil),
	}
	_, err := Resolve(candidates, DefaultReservedIDs(), host, loader)
	require.Error(t, err)
	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Violations, 1)
	dup, ok := re.Violations[0].(*DuplicateID)
	require.True(t, ok)
	assert.Equal(t, "dup-mod", dup.ID)
	assert.Equal(t, 2, dup.Count)
}

func TestResolveVersionMismatch(t *testing.T) {
	candidates := []manifest.ModCandidate{
		candidate("needs-new", "1.0.0", map[string]string{"lib": ">=2.0.0"}),
		candidate("lib", "1.0.0", nil),
	}
	_, err := Resolve(candidates, DefaultReservedIDs(), host, loader)
	require.Error(t, err)
	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Violations, 1)
	vm, ok := re.Violations[0].(*VersionMismatch)
	require.True(t, ok)
	assert.Equal(t, "needs-new", vm.RequestedBy)
	assert.Equal(t, "lib", vm.DependencyID)
	assert.Equal(t, "1.0.0", vm.Actual)
}

func TestResolveBreaksViolation(t *testing.T) {
	c1 := candidate("mod-a", "1.0.0", nil)
	c1.Metadata.Breaks = map[string]version.VersionConstraint{
		"mod-b": {Kind: version.Lt, Version: version.MustParse("2.0.0")},
	}
	c2 := candidate("mod-b", "1.5.0", nil)

	_, err := Resolve([]manifest.ModCandidate{c1, c2}, DefaultReservedIDs(), host, loader)
	require.Error(t, err)
	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Violations, 1)
	_, ok := re.Violations[0].(*BreaksViolation)
	require.True(t, ok)
}

// Property 1 & 2: for every successful resolution, dependencies precede
// dependents, and permuting the input never changes the output.
func TestResolvePermutationInvariant(t *testing.T) {
	base := []manifest.ModCandidate{
		candidate("mod-a", "1.0.0", nil),
		candidate("mod-b", "1.0.0", map[string]string{"mod-a": ">=1.0.0"}),
		candidate("mod-c", "1.0.0", map[string]string{"mod-a": ">=1.0.0", "mod-b": ">=1.0.0"}),
		candidate("mod-d", "1.0.0", nil),
	}
	permutations := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{1, 0, 3, 2},
		{2, 3, 0, 1},
	}

	var first []string
	for _, perm := range permutations {
		shuffled := make([]manifest.ModCandidate, len(base))
		for i, idx := range perm {
			shuffled[i] = base[idx]
		}
		out, err := Resolve(shuffled, DefaultReservedIDs(), host, loader)
		require.NoError(t, err)

		positions := map[string]int{}
		for i, c := range out {
			positions[c.Metadata.ID] = i
		}
		assert.Less(t, positions["mod-a"], positions["mod-b"])
		assert.Less(t, positions["mod-a"], positions["mod-c"])
		assert.Less(t, positions["mod-b"], positions["mod-c"])

		if first == nil {
			first = ids(out)
		} else {
			assert.Equal(t, first, ids(out))
		}
	}
}

func TestResolveLoaderIncompatible(t *testing.T) {
	candidates := []manifest.ModCandidate{
		candidate("my-mod", "1.0.0", map[string]string{"alloy": ">=9.9.9"}),
	}
	_, err := Resolve(candidates, DefaultReservedIDs(), host, loader)
	require.Error(t, err)
	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	hi, ok := re.Violations[0].(*HostIncompatible)
	require.True(t, ok)
	assert.Equal(t, "alloy", hi.ReservedID)
}
