// Package loader implements the loader's top-level orchestration: mod
// discovery (C2) feeding dependency resolution (C3) feeding, in
// topological order, each resolved mod's entrypoint (spec §4.1-§4.3).
package loader

import (
	"bytes"
	"fmt"
	"time"

	"github.com/alloy-modding/alloy-loader/internal/bridge/commands"
	"github.com/alloy-modding/alloy-loader/internal/bridge/hooks"
	"github.com/alloy-modding/alloy-loader/internal/bridge/wrapper"
	"github.com/alloy-modding/alloy-loader/internal/diagnostics"
	"github.com/alloy-modding/alloy-loader/internal/embeds"
	"github.com/alloy-modding/alloy-loader/internal/idset"
	"github.com/alloy-modding/alloy-loader/internal/logging"
	"github.com/alloy-modding/alloy-loader/internal/manifest"
	"github.com/alloy-modding/alloy-loader/internal/overrides"
	"github.com/alloy-modding/alloy-loader/internal/resolve"
	"github.com/alloy-modding/alloy-loader/internal/version"

	"github.com/alloy-modding/alloy-loader/internal/loaderapi"
)

// Config controls one Load invocation.
type Config struct {
	ModsDir          string
	Reserved         resolve.ReservedIDs
	HostVersion      version.SemanticVersion
	LoaderVersion    version.SemanticVersion
	Adapter          wrapper.HostAdapter
	AsyncConcurrency int
	// OverridesPath is an optional operator-supplied dependency override
	// file (internal/overrides). It takes precedence over the loader's
	// built-in override table; a missing file is not an error.
	OverridesPath string
}

// Result is everything Load produces: the live bridge Context every woven
// bridge method call threads through, the resolved load order, and the
// startup diagnostic report (spec §7).
type Result struct {
	Context   *hooks.Context
	Commands  *commands.Registry
	LoadOrder []string
	Report    *diagnostics.Report
}

// Load discovers mod candidates under cfg.ModsDir, resolves their
// dependency graph against cfg.Reserved/HostVersion/LoaderVersion, and
// initializes each resolved mod's entrypoint in topological order (spec
// §4.1 C2, §4.3 C3, §6.3). A resolution failure aborts before any
// entrypoint runs; an individual mod's OnInitialize panicking is not
// recovered here, since a panic during initialization is a load-time
// fault the host should treat as fatal (unlike the steady-state event
// bus and scheduler, which do isolate panics).
func Load(cfg Config, hostDispatcher commands.HostDispatcher) (*Result, error) {
	start := time.Now()
	report := diagnostics.NewReport()

	candidates, err := manifest.Discover(cfg.ModsDir)
	if err != nil {
		return nil, err
	}
	report.DiscoveredCandidates = len(candidates)

	overrideSet, err := loadOverrides(cfg.OverridesPath)
	if err != nil {
		return nil, err
	}
	overrides.ApplyAll(overrideSet, candidates)

	resolved, err := resolve.Resolve(candidates, cfg.Reserved, cfg.HostVersion, cfg.LoaderVersion)
	if err != nil {
		return nil, err
	}

	bridgeCtx := hooks.NewContext(cfg.Adapter, cfg.AsyncConcurrency)
	cmdRegistry := commands.NewRegistry(hostDispatcher)

	declaredEntrypoints := idset.Set{}
	loadOrder := make([]string, 0, len(resolved))
	for _, candidate := range resolved {
		id := candidate.Metadata.ID
		loadOrder = append(loadOrder, id)
		declaredEntrypoints[candidate.Metadata.Entrypoint] = struct{}{}

		warnMissingRecommends(report, candidate, resolved)

		factory, ok := lookupEntrypoint(candidate.Metadata.Entrypoint)
		if !ok {
			continue
		}

		env := &loaderapi.Environment{
			ModID:     id,
			Bus:       bridgeCtx.Bus,
			Commands:  cmdRegistry,
			Scheduler: bridgeCtx.Scheduler,
			Server:    bridgeCtx.Server,
			Players:   bridgeCtx.Players,
			Worlds:    bridgeCtx.Worlds,
			Log:       logging.NewModLogger(id),
		}

		factory().OnInitialize(env)
	}

	unregistered := idset.Subtract(declaredEntrypoints, idset.MakeSet(RegisteredEntrypoints()))
	if len(unregistered) > 0 {
		report.AddWarning("entrypoints declared but never registered, skipped: %s", idset.Format(unregistered))
	}

	report.ResolvedMods = loadOrder
	report.Duration = time.Since(start)

	return &Result{
		Context:   bridgeCtx,
		Commands:  cmdRegistry,
		LoadOrder: loadOrder,
		Report:    report,
	}, nil
}

// loadOverrides merges the loader's built-in override table with an
// optional operator-supplied file at overridesPath, the built-in table
// taking lower precedence so an operator's file can always patch a
// built-in compatibility rule (spec supplement).
func loadOverrides(overridesPath string) (*overrides.Set, error) {
	builtin, err := overrides.Parse(bytes.NewReader(embeds.BuiltinOverrides()))
	if err != nil {
		return nil, fmt.Errorf("loader: parsing built-in overrides: %w", err)
	}
	if overridesPath == "" {
		return builtin, nil
	}
	operator, err := overrides.ParseFile(overridesPath)
	if err != nil {
		return nil, err
	}
	return overrides.Merge(operator, builtin), nil
}

// warnMissingRecommends records a diagnostic for every soft recommends
// constraint candidate declares that no resolved mod satisfies (spec
// supplement: recommends is advisory, unlike depends).
func warnMissingRecommends(report *diagnostics.Report, candidate manifest.ModCandidate, resolved []manifest.ModCandidate) {
	for depID, constraint := range candidate.Metadata.Recommends {
		satisfied := false
		for _, other := range resolved {
			if other.Metadata.ID != depID {
				continue
			}
			if constraint.Satisfies(other.Metadata.Version) {
				satisfied = true
			}
			break
		}
		if !satisfied {
			report.AddWarning("mod %q recommends %q (%s), which no resolved mod satisfies", candidate.Metadata.ID, depID, constraint.String())
		}
	}
}
