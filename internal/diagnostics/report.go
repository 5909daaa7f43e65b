// Package diagnostics implements the loader's single startup diagnostic
// report (spec §7 "User-visible behavior"): one block summarizing what
// was discovered, what was resolved, in what order mods initialized, and
// any warnings or violations encountered along the way.
package diagnostics

import (
	"fmt"
	"strings"
	"time"
)

// Report is the loader's one startup diagnostic block.
type Report struct {
	DiscoveredCandidates int
	ResolvedMods         []string // in load order
	Warnings             []string
	Violations           []string
	Duration             time.Duration
}

// NewReport returns an empty report ready for the loader to populate.
func NewReport() *Report {
	return &Report{}
}

// AddWarning appends a non-fatal warning (e.g. a mod recommending a
// missing optional dependency).
func (r *Report) AddWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// AddViolation appends a resolution violation surfaced to the user even
// though the loader recovered from it (e.g. an overridden compatibility
// check).
func (r *Report) AddViolation(format string, args ...interface{}) {
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}

// String renders the report as the single human-readable block shown at
// startup (spec §7).
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "alloy-loader startup report (%s)\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "  discovered: %d candidate(s)\n", r.DiscoveredCandidates)
	fmt.Fprintf(&b, "  resolved:   %d mod(s)\n", len(r.ResolvedMods))
	for i, id := range r.ResolvedMods {
		fmt.Fprintf(&b, "    %2d. %s\n", i+1, id)
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "  warnings:\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "    - %s\n", w)
		}
	}
	if len(r.Violations) > 0 {
		fmt.Fprintf(&b, "  violations:\n")
		for _, v := range r.Violations {
			fmt.Fprintf(&b, "    - %s\n", v)
		}
	}
	return b.String()
}
