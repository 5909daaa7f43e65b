package loader

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alloy-modding/alloy-loader/internal/loaderapi"
)

// EntrypointFactory constructs a fresh Initializer for a mod's declared
// entrypoint (spec §6.1 manifest field "entrypoint"). Mods register their
// factory from a package init() function, the same registration idiom
// database/sql drivers and image codecs use, since the loader has no way
// to reflectively instantiate an arbitrary Go type by name.
type EntrypointFactory func() loaderapi.Initializer

var (
	registryMu sync.RWMutex
	registry   = make(map[string]EntrypointFactory)
)

// RegisterEntrypoint makes factory available under name for mods whose
// manifest names it as their entrypoint. Registering the same name twice
// panics, mirroring database/sql.Register and image.RegisterFormat: a
// duplicate registration is always a build-time mistake, never a runtime
// condition to recover from.
func RegisterEntrypoint(name string, factory EntrypointFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("loader: entrypoint %q registered twice", name))
	}
	registry[name] = factory
}

// lookupEntrypoint returns the factory registered under name, if any.
func lookupEntrypoint(name string) (EntrypointFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	return factory, ok
}

// RegisteredEntrypoints returns every currently registered entrypoint
// name, sorted, for diagnostics.
func RegisteredEntrypoints() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
