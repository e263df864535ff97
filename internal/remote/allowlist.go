package remote

import (
	"path"
	"sort"
	"strings"
)

// DefaultImportantLimit caps how many files a run fetches
const DefaultImportantLimit = 30

// maxFetchSize skips blobs the contents API will not return inline
const maxFetchSize = 1 << 20

// KnownFiles are fetched first, in this order
var KnownFiles = []string{
	"README.md", "readme.md", "package.json", "requirements.txt", "Cargo.toml",
	"go.mod", "pom.xml", "build.gradle", "Gemfile", "composer.json",
	"Dockerfile", "docker-compose.yml", "Makefile", "CMakeLists.txt",
	"index.js", "index.ts", "main.js", "main.ts", "main.py", "main.go",
	"app.py", "app.js", "app.ts", "main.dart", "pubspec.yaml",
	"pyproject.toml", "setup.py", "build.sh", "run.sh", "start.sh",
	"CONTRIBUTING.md", "LICENSE", ".gitignore",
}

// ImportantExtensions are fetched wherever they appear
var ImportantExtensions = map[string]bool{
	".md": true, ".json": true, ".txt": true, ".toml": true, ".mod": true,
	".xml": true, ".gradle": true, ".yml": true, ".yaml": true,
	".js": true, ".ts": true, ".py": true, ".go": true, ".dart": true,
	".rs": true, ".java": true, ".kt": true, ".swift": true, ".php": true, ".rb": true,
}

// ImportantPrefixes are directories whose files are always candidates
var ImportantPrefixes = []string{"src/", "lib/", "docs/", "app/", "components/"}

// ExcludedDirs never contribute files
var ExcludedDirs = map[string]bool{
	".git":             true,
	"node_modules":     true,
	"vendor":           true,
	"dist":             true,
	"build":            true,
	"target":           true,
	"__pycache__":      true,
	".next":            true,
	"coverage":         true,
	".venv":            true,
	"venv":             true,
	"bower_components": true,
}

// ExcludedFiles are lock files and generated artifacts with no README value
var ExcludedFiles = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"go.sum":            true,
	"Cargo.lock":        true,
	"poetry.lock":       true,
	"Gemfile.lock":      true,
	"composer.lock":     true,
}

var knownIndex = func() map[string]int {
	idx := make(map[string]int, len(KnownFiles))
	for i, name := range KnownFiles {
		key := strings.ToLower(name)
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}()

// IsImportant reports whether a blob path is worth fetching
func IsImportant(p string) bool {
	base := path.Base(p)
	if ExcludedFiles[base] || strings.HasSuffix(base, ".min.js") {
		return false
	}
	for _, dir := range strings.Split(path.Dir(p), "/") {
		if ExcludedDirs[dir] {
			return false
		}
	}

	if _, ok := knownIndex[strings.ToLower(base)]; ok {
		return true
	}
	if ImportantExtensions[strings.ToLower(path.Ext(base))] {
		return true
	}
	for _, prefix := range ImportantPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// SelectImportant picks at most limit blob paths from tree to fetch. Known
// files come first in KnownFiles order, shallower paths before deeper ones;
// the remaining candidates keep their tree order.
func SelectImportant(tree []TreeEntry, limit int) []string {
	if limit <= 0 {
		limit = DefaultImportantLimit
	}

	type candidate struct {
		path  string
		rank  int
		depth int
	}

	var candidates []candidate
	for _, e := range tree {
		if !e.IsBlob() || e.Size > maxFetchSize || !IsImportant(e.Path) {
			continue
		}
		rank, ok := knownIndex[strings.ToLower(path.Base(e.Path))]
		if !ok {
			rank = len(KnownFiles)
		}
		candidates = append(candidates, candidate{path: e.Path, rank: rank, depth: strings.Count(e.Path, "/")})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].rank != candidates[j].rank {
			return candidates[i].rank < candidates[j].rank
		}
		if candidates[i].rank == len(KnownFiles) {
			return false
		}
		return candidates[i].depth < candidates[j].depth
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.path
	}
	return paths
}

// Aggregate returns the number of blobs in tree and their total size
func Aggregate(tree []TreeEntry) (count int, totalBytes int64) {
	for _, e := range tree {
		if e.IsBlob() {
			count++
			totalBytes += e.Size
		}
	}
	return count, totalBytes
}
