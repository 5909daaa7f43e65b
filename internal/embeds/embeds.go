// Package embeds holds build-time assets baked into the loader binary
// via go:embed (grounded on the teacher's app/embeds package), currently
// the built-in dependency override table applied before any
// operator-supplied override file (internal/overrides).
package embeds

import _ "embed"

//go:embed builtin_overrides.json
var builtinOverrides []byte

// BuiltinOverrides returns the content of the loader's built-in
// dependency override document. It ships compatibility patches for
// known-broken third-party manifests that predate a host API change,
// without requiring a repackage of the affected mod archive.
func BuiltinOverrides() []byte {
	return builtinOverrides
}
