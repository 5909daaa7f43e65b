// Package manifest implements mod discovery and alloy.mod.json metadata
// parsing (spec §3, §4.2, §6.1): component C2.
package manifest

import (
	"regexp"

	"github.com/titanous/json5"

	"github.com/alloy-modding/alloy-loader/internal/version"
)

// Environment is one of the three declared deployment targets for a mod.
type Environment string

const (
	EnvironmentClient Environment = "client"
	EnvironmentServer Environment = "server"
	EnvironmentBoth   Environment = "both"
)

func (e Environment) valid() bool {
	switch e {
	case EnvironmentClient, EnvironmentServer, EnvironmentBoth:
		return true
	}
	return false
}

// idPattern matches spec §3's id grammar: "[a-z][a-z0-9_-]*", length 2..64,
// enforced here via the regexp and a separate length check below.
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// rawManifest mirrors the wire format in spec §6.1 for JSON5 decoding.
// Unknown top-level fields are tolerated by virtue of not being declared
// here and of json5.Unmarshal ignoring them.
type rawManifest struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Authors      []string          `json:"authors"`
	License      string            `json:"license"`
	Entrypoint   string            `json:"entrypoint"`
	Dependencies map[string]string `json:"dependencies"`
	Recommends   map[string]string `json:"recommends"`
	Breaks       map[string]string `json:"breaks"`
	Environment  string            `json:"environment"`
}

// ModMetadata is the immutable, validated record parsed from a mod
// archive's alloy.mod.json entry (spec §3).
type ModMetadata struct {
	ID           string
	Name         string
	Version      version.SemanticVersion
	Description  string
	License      string
	Entrypoint   string
	Authors      []string
	Dependencies map[string]version.VersionConstraint
	// Recommends are soft dependencies (SPEC_FULL supplement): a missing or
	// version-mismatched recommended id is not a violation, but a present
	// one participates in load ordering like a dependency, so a cycle that
	// runs through recommends edges fails resolution as a
	// CircularDependency.
	Recommends map[string]version.VersionConstraint
	// Breaks are hard-failure constraints (SPEC_FULL supplement): if a
	// present candidate's id/version satisfies the constraint, resolution
	// fails.
	Breaks      map[string]version.VersionConstraint
	Environment Environment
}

// ParseManifest decodes and validates raw alloy.mod.json bytes, as read from
// an archive entry by Discover. archiveName is used only to build
// descriptive errors.
func ParseManifest(data []byte, archiveName string) (ModMetadata, error) {
	var raw rawManifest
	if err := json5.Unmarshal(data, &raw); err != nil {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "malformed JSON: " + err.Error()}
	}

	if raw.ID == "" {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "missing required field 'id'"}
	}
	if len(raw.ID) < 2 || len(raw.ID) > 64 {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "'id' must be 2-64 characters long"}
	}
	if !idPattern.MatchString(raw.ID) {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "'id' must match [a-z][a-z0-9_-]*"}
	}
	if raw.Name == "" {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "missing required field 'name'"}
	}
	if raw.Entrypoint == "" {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "missing required field 'entrypoint'"}
	}

	v, err := version.Parse(raw.Version)
	if err != nil {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "invalid 'version': " + err.Error()}
	}

	env := Environment(raw.Environment)
	if !env.valid() {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "'environment' must be one of client, server, both"}
	}

	deps, err := parseConstraintMap(raw.Dependencies)
	if err != nil {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "invalid 'dependencies': " + err.Error()}
	}
	recommends, err := parseConstraintMap(raw.Recommends)
	if err != nil {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "invalid 'recommends': " + err.Error()}
	}
	breaks, err := parseConstraintMap(raw.Breaks)
	if err != nil {
		return ModMetadata{}, &InvalidManifestError{Archive: archiveName, Reason: "invalid 'breaks': " + err.Error()}
	}

	return ModMetadata{
		ID:           raw.ID,
		Name:         raw.Name,
		Version:      v,
		Description:  raw.Description,
		License:      raw.License,
		Entrypoint:   raw.Entrypoint,
		Authors:      append([]string(nil), raw.Authors...),
		Dependencies: deps,
		Recommends:   recommends,
		Breaks:       breaks,
		Environment:  env,
	}, nil
}

func parseConstraintMap(m map[string]string) (map[string]version.VersionConstraint, error) {
	if len(m) == 0 {
		return map[string]version.VersionConstraint{}, nil
	}
	out := make(map[string]version.VersionConstraint, len(m))
	for id, raw := range m {
		c, err := version.ParseConstraint(raw)
		if err != nil {
			return nil, err
		}
		out[id] = c
	}
	return out, nil
}

// ModCandidate is a discovered but not-yet-resolved mod (spec §3).
type ModCandidate struct {
	Metadata    ModMetadata
	ArchivePath string
}
