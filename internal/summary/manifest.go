package summary

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
)

// maxFallbackDependencies bounds the dependency list of a fallback summary
const maxFallbackDependencies = 10

// ManifestScanner reads dependency names out of one kind of manifest
type ManifestScanner interface {
	Matches(p string) bool
	Dependencies(p, content string) ([]string, error)
}

// ManifestScanners are consulted for every fetched file, in order
var ManifestScanners = []ManifestScanner{
	goModScanner{},
	packageJSONScanner{},
	requirementsScanner{},
	cargoScanner{},
}

type goModScanner struct{}

func (goModScanner) Matches(p string) bool { return path.Base(p) == "go.mod" }

func (goModScanner) Dependencies(p, content string) ([]string, error) {
	f, err := modfile.ParseLax(p, []byte(content), nil)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	deps := make([]string, 0, len(f.Require))
	for _, r := range f.Require {
		if r.Indirect {
			continue
		}
		deps = append(deps, r.Mod.Path)
	}
	return deps, nil
}

type packageJSONScanner struct{}

func (packageJSONScanner) Matches(p string) bool { return path.Base(p) == "package.json" }

func (packageJSONScanner) Dependencies(p, content string) ([]string, error) {
	var pkg struct {
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	return sortedKeys(pkg.Dependencies), nil
}

type requirementsScanner struct{}

func (requirementsScanner) Matches(p string) bool { return path.Base(p) == "requirements.txt" }

func (requirementsScanner) Dependencies(_, content string) ([]string, error) {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		deps = append(deps, line)
	}
	return deps, nil
}

type cargoScanner struct{}

func (cargoScanner) Matches(p string) bool { return path.Base(p) == "Cargo.toml" }

func (cargoScanner) Dependencies(p, content string) ([]string, error) {
	var manifest struct {
		Dependencies map[string]any `toml:"dependencies"`
	}
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	return sortedKeys(manifest.Dependencies), nil
}

// ScanDependencies collects dependency names from every recognised manifest
// in files, in path order, and keeps the first maxFallbackDependencies.
// Manifests that fail to parse are skipped.
func ScanDependencies(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var deps []string
	for _, p := range paths {
		for _, scanner := range ManifestScanners {
			if !scanner.Matches(p) {
				continue
			}
			found, err := scanner.Dependencies(p, files[p])
			if err != nil {
				continue
			}
			deps = append(deps, found...)
		}
	}

	if len(deps) > maxFallbackDependencies {
		deps = deps[:maxFallbackDependencies]
	}
	return deps
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
