package overrides

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alloy-modding/alloy-loader/internal/version"
)

// rawFile mirrors the override file's wire format: a version tag plus a
// per-mod, per-field map of dependency-id to version-constraint string.
// Field keys may carry a "+"/"-" prefix selecting ActionAdd/ActionRemove;
// an unprefixed key is ActionReplace.
type rawFile struct {
	Version   int                                  `json:"version"`
	Overrides map[string]map[string]map[string]string `json:"overrides"`
}

// FileVersion is the only override file schema version this package
// understands.
const FileVersion = 1

// Parse decodes an override document from r.
func Parse(r io.Reader) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("overrides: reading document: %w", err)
	}

	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("overrides: parsing JSON: %w", err)
	}
	if raw.Version != FileVersion {
		return nil, &UnsupportedVersionError{Got: raw.Version, Want: FileVersion}
	}

	set := &Set{}
	for targetModID, fields := range raw.Overrides {
		for rawField, entries := range fields {
			fieldName, action := parseFieldKey(rawField)
			field := Field(fieldName)
			if !field.valid() {
				return nil, &UnknownFieldError{Field: fieldName, TargetModID: targetModID}
			}
			for depID, rawConstraint := range entries {
				var constraint version.VersionConstraint
				if action != ActionRemove {
					c, err := version.ParseConstraint(rawConstraint)
					if err != nil {
						return nil, fmt.Errorf("overrides: mod %q field %q entry %q: %w", targetModID, fieldName, depID, err)
					}
					constraint = c
				}
				set.Rules = append(set.Rules, Rule{
					TargetModID:  targetModID,
					Field:        field,
					Action:       action,
					DependencyID: depID,
					VersionMatch: constraint,
				})
			}
		}
	}
	return set, nil
}

// ParseFile reads and parses the override document at path. A missing
// file is not an error: it returns an empty, non-nil Set, since an
// operator override file is optional.
func ParseFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Set{}, nil
		}
		return nil, fmt.Errorf("overrides: opening %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func parseFieldKey(key string) (field string, action Action) {
	switch {
	case strings.HasPrefix(key, "+"):
		return key[1:], ActionAdd
	case strings.HasPrefix(key, "-"):
		return key[1:], ActionRemove
	default:
		return key, ActionReplace
	}
}

// UnsupportedVersionError reports an override file declaring a schema
// version this package cannot parse.
type UnsupportedVersionError struct {
	Got, Want int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("overrides: unsupported file version %d, expected %d", e.Got, e.Want)
}

// UnknownFieldError reports an override entry targeting a field this
// package does not recognize.
type UnknownFieldError struct {
	Field       string
	TargetModID string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("overrides: mod %q: unknown override field %q", e.TargetModID, e.Field)
}
