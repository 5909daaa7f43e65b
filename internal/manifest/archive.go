package manifest

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// manifestEntryName is the exact, case-sensitive archive-root path the
// manifest must live at (spec §6.1, §6.2: "No normalization beyond exact
// byte-string comparison is performed").
const manifestEntryName = "alloy.mod.json"

// archiveExtension is the case-insensitive suffix Discover scans for.
const archiveExtension = ".jar"

// Discover walks modsDir (non-recursively) for archive files and extracts
// ModCandidates from any that carry an alloy.mod.json at their root (spec
// §4.2).
//
// A missing modsDir is not an error: Discover returns an empty slice. A
// directory-listing failure, a .jar that cannot be opened as a zip
// archive, or a failure to read/parse the manifest entry of an archive
// that has one, is a fatal DiscoveryError — readable archives without the
// entry are silently skipped, because they simply are not Alloy mods.
func Discover(modsDir string) ([]ModCandidate, error) {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &DiscoveryError{Cause: fmt.Errorf("reading mods directory %q: %w", modsDir, err)}
	}

	var archivePaths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), archiveExtension) {
			continue
		}
		archivePaths = append(archivePaths, filepath.Join(modsDir, e.Name()))
	}

	results := make([]*ModCandidate, len(archivePaths))

	var g errgroup.Group
	for i, path := range archivePaths {
		i, path := i, path
		g.Go(func() error {
			candidate, found, err := extractCandidate(path)
			if err != nil {
				return err
			}
			if found {
				results[i] = candidate
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]ModCandidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates, nil
}

// extractCandidate opens path as a zip archive and looks for the manifest
// entry at its root. It returns (nil, false, nil) when the archive simply
// isn't an Alloy mod, and a DiscoveryError for any other failure.
func extractCandidate(path string) (*ModCandidate, bool, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, false, &DiscoveryError{Archive: path, Cause: err}
	}
	defer zr.Close()

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == manifestEntryName {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, false, nil
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, false, &DiscoveryError{Archive: path, Cause: fmt.Errorf("opening %s: %w", manifestEntryName, err)}
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, false, &DiscoveryError{Archive: path, Cause: fmt.Errorf("reading %s: %w", manifestEntryName, err)}
	}

	metadata, err := ParseManifest(data, path)
	if err != nil {
		// A malformed manifest inside an archive that does declare one is
		// fatal (spec §4.2), surfaced as a DiscoveryError wrapping the
		// underlying InvalidManifestError so callers can still type-assert
		// through to it via errors.As.
		return nil, false, &DiscoveryError{Archive: path, Cause: err}
	}

	return &ModCandidate{Metadata: metadata, ArchivePath: path}, true, nil
}
