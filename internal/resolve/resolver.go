package resolve

import (
	"sort"

	"github.com/alloy-modding/alloy-loader/internal/logging"
	"github.com/alloy-modding/alloy-loader/internal/manifest"
	"github.com/alloy-modding/alloy-loader/internal/version"
)

// ReservedIDs names the two dependency keys that express compatibility with
// the host application and the loader itself, rather than with another mod
// (spec §3). The Open Question in spec §9 about whether this should be
// configurable is resolved in DESIGN.md: Resolve takes them as a parameter
// rather than hardcoding them, and DefaultReservedIDs supplies the
// conventional names.
type ReservedIDs struct {
	HostID   string
	LoaderID string
}

// DefaultReservedIDs matches the conventional host/loader ids used in the
// spec's worked examples.
func DefaultReservedIDs() ReservedIDs {
	return ReservedIDs{HostID: "minecraft", LoaderID: "alloy"}
}

// Resolve orders candidates such that every non-reserved dependency of a mod
// appears earlier than the mod itself (spec §4.3), or returns a
// *ResolutionError enumerating every problem found.
//
// Resolution is deterministic: permuting the input order never changes the
// output or the set (and order) of reported violations (spec §8 property 2).
func Resolve(candidates []manifest.ModCandidate, reserved ReservedIDs, hostVersion, loaderVersion version.SemanticVersion) ([]manifest.ModCandidate, error) {
	var violations []Violation

	byID, dupViolations := groupByID(candidates)
	violations = append(violations, dupViolations...)

	// Deterministic iteration: walk unique ids in lexicographic order so
	// that the violations collected in steps 2-4 below never depend on the
	// caller's candidate ordering.
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		c := byID[id]
		depIDs := make([]string, 0, len(c.Metadata.Dependencies))
		for depID := range c.Metadata.Dependencies {
			depIDs = append(depIDs, depID)
		}
		sort.Strings(depIDs)
		for _, depID := range depIDs {
			constraint := c.Metadata.Dependencies[depID]
			switch depID {
			case reserved.HostID:
				if !constraint.Satisfies(hostVersion) {
					violations = append(violations, &HostIncompatible{
						ModID: id, ReservedID: reserved.HostID,
						Constraint: constraint.String(), Actual: hostVersion.String(),
					})
				}
				continue
			case reserved.LoaderID:
				if !constraint.Satisfies(loaderVersion) {
					violations = append(violations, &HostIncompatible{
						ModID: id, ReservedID: reserved.LoaderID,
						Constraint: constraint.String(), Actual: loaderVersion.String(),
					})
				}
				continue
			}

			dep, ok := byID[depID]
			if !ok {
				violations = append(violations, &MissingDependency{
					RequestedBy: id, MissingID: depID, Constraint: constraint.String(),
				})
				continue
			}
			if !constraint.Satisfies(dep.Metadata.Version) {
				violations = append(violations, &VersionMismatch{
					RequestedBy: id, DependencyID: depID,
					Constraint: constraint.String(), Actual: dep.Metadata.Version.String(),
				})
			}
		}

		brokenIDs := make([]string, 0, len(c.Metadata.Breaks))
		for brokenID := range c.Metadata.Breaks {
			brokenIDs = append(brokenIDs, brokenID)
		}
		sort.Strings(brokenIDs)
		for _, brokenID := range brokenIDs {
			constraint := c.Metadata.Breaks[brokenID]
			dep, ok := byID[brokenID]
			if !ok {
				continue
			}
			if constraint.Satisfies(dep.Metadata.Version) {
				violations = append(violations, &BreaksViolation{
					RequestedBy: id, BrokenID: brokenID,
					Constraint: constraint.String(), Actual: dep.Metadata.Version.String(),
				})
			}
		}
	}

	if len(violations) > 0 {
		logging.Errorf("Resolver: resolution failed with %d violation(s)", len(violations))
		return nil, &ResolutionError{Violations: violations}
	}

	ordered, cycle := topologicalSort(byID, ids, reserved)
	if cycle != nil {
		return nil, &ResolutionError{Violations: []Violation{&CircularDependency{Cycle: cycle}}}
	}

	result := make([]manifest.ModCandidate, len(ordered))
	for i, id := range ordered {
		result[i] = *byID[id]
	}
	logging.Infof("Resolver: resolved load order: %v", ordered)
	return result, nil
}

func groupByID(candidates []manifest.ModCandidate) (map[string]*manifest.ModCandidate, []Violation) {
	groups := make(map[string][]manifest.ModCandidate)
	for _, c := range candidates {
		groups[c.Metadata.ID] = append(groups[c.Metadata.ID], c)
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	byID := make(map[string]*manifest.ModCandidate, len(groups))
	var violations []Violation
	for _, id := range ids {
		group := groups[id]
		if len(group) >= 2 {
			violations = append(violations, &DuplicateID{ID: id, Count: len(group)})
			continue
		}
		c := group[0]
		byID[id] = &c
	}
	return byID, violations
}

// topologicalSort runs Kahn's algorithm over the dependency graph (edges
// point from a dependency to its dependents), breaking ties among
// simultaneously-ready nodes by ascending lexicographic id (spec §4.3,
// determinism requirement). If candidates remain once no node has zero
// in-degree, it returns one recovered cycle instead of an ordering.
func topologicalSort(byID map[string]*manifest.ModCandidate, sortedIDs []string, reserved ReservedIDs) (order []string, cycle []string) {
	inDegree := make(map[string]int, len(byID))
	dependents := make(map[string][]string, len(byID)) // dependency id -> ids that depend on it
	for _, id := range sortedIDs {
		inDegree[id] = 0
	}
	for _, id := range sortedIDs {
		for _, depID := range allOrderingDeps(byID[id], reserved) {
			if _, exists := byID[depID]; !exists {
				continue
			}
			inDegree[id]++
			dependents[depID] = append(dependents[depID], id)
		}
	}

	ready := make([]string, 0, len(sortedIDs))
	for _, id := range sortedIDs {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	result := make([]string, 0, len(sortedIDs))
	for len(ready) > 0 {
		sort.Strings(ready)
		next := ready[0]
		ready = ready[1:]
		result = append(result, next)

		newlyReady := make([]string, 0)
		for _, dependent := range dependents[next] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				newlyReady = append(newlyReady, dependent)
			}
		}
		sort.Strings(newlyReady)
		ready = append(ready, newlyReady...)
	}

	if len(result) == len(sortedIDs) {
		return result, nil
	}

	remaining := make(map[string]bool)
	for _, id := range sortedIDs {
		if inDegree[id] > 0 {
			remaining[id] = true
		}
	}
	return nil, findCycle(byID, remaining, reserved)
}

// allOrderingDeps returns every id that must be loaded before c: its hard
// dependencies plus (SPEC_FULL supplement) any present recommends.
func allOrderingDeps(c *manifest.ModCandidate, reserved ReservedIDs) []string {
	var deps []string
	for id := range c.Metadata.Dependencies {
		if id == reserved.HostID || id == reserved.LoaderID {
			continue
		}
		deps = append(deps, id)
	}
	for id := range c.Metadata.Recommends {
		deps = append(deps, id)
	}
	return deps
}

// findCycle performs a deterministic DFS from the lexicographically-first
// remaining node to recover one concrete cycle among the still-unordered
// candidates.
func findCycle(byID map[string]*manifest.ModCandidate, remaining map[string]bool, reserved ReservedIDs) []string {
	ids := make([]string, 0, len(remaining))
	for id := range remaining {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	visiting := map[string]int{} // id -> index in the current path
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		if idx, onPath := visiting[id]; onPath {
			return append(append([]string{}, path[idx:]...), id)
		}
		if !remaining[id] {
			return nil
		}
		visiting[id] = len(path)
		path = append(path, id)
		defer func() {
			delete(visiting, id)
			path = path[:len(path)-1]
		}()

		deps := allOrderingDeps(byID[id], reserved)
		sort.Strings(deps)
		for _, dep := range deps {
			if !remaining[dep] {
				continue
			}
			if cyc := visit(dep); cyc != nil {
				return cyc
			}
		}
		return nil
	}

	for _, id := range ids {
		if cyc := visit(id); cyc != nil {
			return cyc
		}
	}
	// Should be unreachable: Kahn's algorithm guarantees a cycle exists
	// among the remaining nodes.
	return ids
}
