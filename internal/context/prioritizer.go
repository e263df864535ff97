// Package context classifies fetched repository files and ranks them for analysis.
package context

import (
	"sort"
	"strings"

	"github.com/tara-vision/readmegen/internal/strategy"
)

// ClassificationRule assigns a category and base score to paths containing any pattern
type ClassificationRule struct {
	Category Category
	Score    int
	Patterns []string
}

// ClassificationRules are evaluated in order; the first match decides the category
var ClassificationRules = []ClassificationRule{
	// Dependency manifests
	{CategoryConfig, 10, []string{"package.json", "requirements.txt", "Cargo.toml", "go.mod", "pom.xml", "build.gradle", "Gemfile", "composer.json", "pyproject.toml"}},
	// Entry points
	{CategorySource, 9, []string{"main.js", "main.ts", "main.py", "main.go", "index.js", "index.ts", "app.js", "app.ts", "app.py", "lib/main.dart"}},
	{CategoryDocumentation, 8, []string{"README.md", "readme.md", "docs/", "documentation/"}},
	{CategoryBuild, 7, []string{"Dockerfile", "docker-compose.yml", "Makefile", "CMakeLists.txt", "build.sh"}},
	// Conventional source directories
	{CategorySource, 6, []string{"src/", "lib/", "app/", "components/", "pages/"}},
}

const (
	defaultScore = 1

	rootBonus     = 2
	testPenalty   = 3
	vendorPenalty = 5
)

var (
	testMarkers   = []string{"test", "spec", "__tests__"}
	generatedDirs = map[string]bool{"node_modules": true, "dist": true, "build": true}
)

// Classify returns the category and base score of path without adjustments
func Classify(path string) (Category, int) {
	for _, rule := range ClassificationRules {
		for _, pattern := range rule.Patterns {
			if strings.Contains(path, pattern) {
				return rule.Category, rule.Score
			}
		}
	}
	return CategoryOther, defaultScore
}

// Score returns the category and final importance of path. Root-level files
// gain a bonus, test-looking and generated paths are penalised, and the result
// never drops below 1.
func Score(path string) (Category, int) {
	category, score := Classify(path)

	if !strings.Contains(path, "/") {
		score += rootBonus
	}
	for _, marker := range testMarkers {
		if strings.Contains(path, marker) {
			score -= testPenalty
			break
		}
	}
	if underGeneratedDir(path) {
		score -= vendorPenalty
	}

	if score < 1 {
		score = 1
	}
	return category, score
}

// Prioritize classifies the non-empty files, sorts them by importance
// (highest first, ties in path order) and keeps at most strat.MaxFiles.
func Prioritize(files map[string]string, strat strategy.Strategy) []FileAnalysis {
	paths := make([]string, 0, len(files))
	for p, content := range files {
		if content == "" {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)

	analyses := make([]FileAnalysis, 0, len(paths))
	for _, p := range paths {
		category, importance := Score(p)
		analyses = append(analyses, FileAnalysis{
			Path:       p,
			Content:    files[p],
			Category:   category,
			Language:   DetectFileType(p),
			Importance: importance,
			Size:       len(files[p]),
		})
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].Importance > analyses[j].Importance
	})

	if strat.MaxFiles > 0 && len(analyses) > strat.MaxFiles {
		analyses = analyses[:strat.MaxFiles]
	}
	return analyses
}

func underGeneratedDir(path string) bool {
	segments := strings.Split(path, "/")
	for _, dir := range segments[:len(segments)-1] {
		if generatedDirs[dir] {
			return true
		}
	}
	return false
}
