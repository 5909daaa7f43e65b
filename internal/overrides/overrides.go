// Package overrides implements the operator-supplied dependency override
// file (SPEC_FULL supplement, grounded on the host loader's own
// fabric_loader_dependencies.json mechanism): a JSON document that adds,
// removes, or replaces entries in a resolved mod's dependencies,
// recommends, or breaks maps before resolution runs. This lets an
// operator patch a broken manifest without repackaging the mod archive.
package overrides

import (
	"fmt"

	"github.com/alloy-modding/alloy-loader/internal/manifest"
	"github.com/alloy-modding/alloy-loader/internal/version"
)

// Action is the verb a single override rule applies to one dependency
// entry.
type Action int

const (
	// ActionAdd inserts or overwrites a single entry.
	ActionAdd Action = iota
	// ActionRemove deletes a single entry, if present.
	ActionRemove
	// ActionReplace discards every existing entry in the targeted field
	// before applying this rule's own entries.
	ActionReplace
)

// Field names the ModMetadata map an override rule targets.
type Field string

const (
	FieldDependencies Field = "dependencies"
	FieldRecommends   Field = "recommends"
	FieldBreaks       Field = "breaks"
)

func (f Field) valid() bool {
	switch f {
	case FieldDependencies, FieldRecommends, FieldBreaks:
		return true
	}
	return false
}

// Rule is one parsed override: for TargetModID's Field, apply Action to
// DependencyID using VersionMatch (ignored for ActionRemove).
type Rule struct {
	TargetModID  string
	Field        Field
	Action       Action
	DependencyID string
	VersionMatch version.VersionConstraint
}

// Set is an ordered collection of override rules. Apply runs Rules in
// order, so when two rules share a (TargetModID, Field, DependencyID) key
// the later one determines the result; Merge, by contrast, keeps only the
// first rule for each key.
type Set struct {
	Rules []Rule
}

// Apply mutates candidate's metadata maps in place according to every
// rule in s targeting candidate's id. A ActionReplace rule for a field
// clears that field's existing entries the first time it is
// encountered during this call; callers wanting config precedence
// across multiple sources should call Merge first instead of calling
// Apply more than once per candidate.
func Apply(s *Set, candidate *manifest.ModCandidate) {
	if s == nil {
		return
	}
	replaced := map[Field]bool{}
	for _, rule := range s.Rules {
		if rule.TargetModID != candidate.Metadata.ID {
			continue
		}
		target := fieldMap(&candidate.Metadata, rule.Field)
		if target == nil {
			continue
		}
		if rule.Action == ActionReplace && !replaced[rule.Field] {
			for k := range *target {
				delete(*target, k)
			}
			replaced[rule.Field] = true
		}
		switch rule.Action {
		case ActionAdd, ActionReplace:
			(*target)[rule.DependencyID] = rule.VersionMatch
		case ActionRemove:
			delete(*target, rule.DependencyID)
		}
	}
}

func fieldMap(meta *manifest.ModMetadata, f Field) *map[string]version.VersionConstraint {
	switch f {
	case FieldDependencies:
		return &meta.Dependencies
	case FieldRecommends:
		return &meta.Recommends
	case FieldBreaks:
		return &meta.Breaks
	default:
		return nil
	}
}

// Merge combines multiple override sets, earlier sets taking precedence
// over later ones; the loader passes an operator-supplied file ahead of
// the built-in embedded set (spec supplement). A ActionReplace rule from
// a higher-priority set blocks every lower-priority rule for that same
// (mod, field).
func Merge(sets ...*Set) *Set {
	merged := &Set{}
	replacedFields := map[string]bool{}
	seenItems := map[string]bool{}
	for _, s := range sets {
		if s == nil {
			continue
		}
		replacedHere := map[string]bool{}
		for _, rule := range s.Rules {
			fieldKey := fmt.Sprintf("%s:%s", rule.TargetModID, rule.Field)
			itemKey := fmt.Sprintf("%s:%s", fieldKey, rule.DependencyID)
			if replacedFields[fieldKey] || seenItems[itemKey] {
				continue
			}
			merged.Rules = append(merged.Rules, rule)
			seenItems[itemKey] = true
			if rule.Action == ActionReplace {
				replacedHere[fieldKey] = true
			}
		}
		for fieldKey := range replacedHere {
			replacedFields[fieldKey] = true
		}
	}
	return merged
}

// ApplyAll runs Apply against every candidate in candidates.
func ApplyAll(s *Set, candidates []manifest.ModCandidate) {
	for i := range candidates {
		Apply(s, &candidates[i])
	}
}
