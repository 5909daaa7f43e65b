package overrides

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alloy-modding/alloy-loader/internal/manifest"
	"github.com/alloy-modding/alloy-loader/internal/version"
)

func candidate(id string, deps map[string]string) manifest.ModCandidate {
	constraints := make(map[string]version.VersionConstraint, len(deps))
	for depID, raw := range deps {
		c, err := version.ParseConstraint(raw)
		if err != nil {
			panic(err)
		}
		constraints[depID] = c
	}
	return manifest.ModCandidate{Metadata: manifest.ModMetadata{ID: id, Dependencies: constraints}}
}

func TestParseAddRule(t *testing.T) {
	doc := `{"version":1,"overrides":{"mod-a":{"+dependencies":{"mod-b":">=1.0.0"}}}}`
	set, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, set.Rules, 1)
	assert.Equal(t, ActionAdd, set.Rules[0].Action)
	assert.Equal(t, "mod-a", set.Rules[0].TargetModID)
	assert.Equal(t, "mod-b", set.Rules[0].DependencyID)
}

func TestParseRemoveAndReplaceRules(t *testing.T) {
	doc := `{"version":1,"overrides":{"mod-a":{"-dependencies":{"mod-c":"*"},"dependencies":{"mod-d":"~1.2.0"}}}}`
	set, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, set.Rules, 2)

	var actions []Action
	for _, r := range set.Rules {
		actions = append(actions, r.Action)
	}
	assert.ElementsMatch(t, []Action{ActionRemove, ActionReplace}, actions)
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"version":2,"overrides":{}}`))
	require.Error(t, err)
	var verr *UnsupportedVersionError
	assert.ErrorAs(t, err, &verr)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"version":1,"overrides":{"mod-a":{"provides":{"x":"*"}}}}`))
	require.Error(t, err)
	var ferr *UnknownFieldError
	assert.ErrorAs(t, err, &ferr)
}

func TestParseFileMissingReturnsEmptySet(t *testing.T) {
	set, err := ParseFile("/nonexistent/does-not-exist.json")
	require.NoError(t, err)
	assert.Empty(t, set.Rules)
}

func TestApplyAddInsertsDependency(t *testing.T) {
	c := candidate("mod-a", map[string]string{})
	set := &Set{Rules: []Rule{
		{TargetModID: "mod-a", Field: FieldDependencies, Action: ActionAdd, DependencyID: "mod-b", VersionMatch: mustConstraint(">=1.0.0")},
	}}
	Apply(set, &c)
	require.Contains(t, c.Metadata.Dependencies, "mod-b")
}

func TestApplyRemoveDeletesDependency(t *testing.T) {
	c := candidate("mod-a", map[string]string{"mod-b": "*"})
	set := &Set{Rules: []Rule{
		{TargetModID: "mod-a", Field: FieldDependencies, Action: ActionRemove, DependencyID: "mod-b"},
	}}
	Apply(set, &c)
	assert.NotContains(t, c.Metadata.Dependencies, "mod-b")
}

func TestApplyReplaceClearsExistingEntriesOnce(t *testing.T) {
	c := candidate("mod-a", map[string]string{"mod-old": "*"})
	set := &Set{Rules: []Rule{
		{TargetModID: "mod-a", Field: FieldDependencies, Action: ActionReplace, DependencyID: "mod-new", VersionMatch: mustConstraint("*")},
	}}
	Apply(set, &c)
	assert.NotContains(t, c.Metadata.Dependencies, "mod-old")
	assert.Contains(t, c.Metadata.Dependencies, "mod-new")
}

func TestApplyIgnoresOtherMods(t *testing.T) {
	c := candidate("mod-a", map[string]string{})
	set := &Set{Rules: []Rule{
		{TargetModID: "mod-z", Field: FieldDependencies, Action: ActionAdd, DependencyID: "mod-b", VersionMatch: mustConstraint("*")},
	}}
	Apply(set, &c)
	assert.Empty(t, c.Metadata.Dependencies)
}

func TestMergeHigherPriorityReplaceBlocksLowerPriorityRules(t *testing.T) {
	high := &Set{Rules: []Rule{
		{TargetModID: "mod-a", Field: FieldDependencies, Action: ActionReplace, DependencyID: "mod-new", VersionMatch: mustConstraint("*")},
	}}
	low := &Set{Rules: []Rule{
		{TargetModID: "mod-a", Field: FieldDependencies, Action: ActionAdd, DependencyID: "mod-old", VersionMatch: mustConstraint("*")},
	}}

	merged := Merge(high, low)
	require.Len(t, merged.Rules, 1)
	assert.Equal(t, "mod-new", merged.Rules[0].DependencyID)
}

func TestMergeKeepsDisjointRulesFromBothSets(t *testing.T) {
	high := &Set{Rules: []Rule{
		{TargetModID: "mod-a", Field: FieldDependencies, Action: ActionAdd, DependencyID: "mod-b", VersionMatch: mustConstraint("*")},
	}}
	low := &Set{Rules: []Rule{
		{TargetModID: "mod-a", Field: FieldRecommends, Action: ActionAdd, DependencyID: "mod-c", VersionMatch: mustConstraint("*")},
	}}

	merged := Merge(high, low)
	assert.Len(t, merged.Rules, 2)
}

func mustConstraint(s string) version.VersionConstraint {
	c, err := version.ParseConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}
