package summary

import (
	"strings"

	repoctx "github.com/tara-vision/readmegen/internal/context"
	"github.com/tara-vision/readmegen/internal/remote"
)

// LanguageUnknown is reported when no language rule matches
const LanguageUnknown = "Unknown"

// LanguageRule detects a language by file extension anywhere in the tree or
// by a fetched manifest
type LanguageRule struct {
	Language   string
	Extensions []string
	Manifest   string
}

// LanguageRules are evaluated in order; the first match wins
var LanguageRules = []LanguageRule{
	{"Go", []string{"go"}, "go.mod"},
	{"Python", []string{"py"}, "requirements.txt"},
	{"JavaScript", []string{"js", "ts"}, "package.json"},
	{"Rust", []string{"rs"}, "Cargo.toml"},
	{"Java", []string{"java"}, "pom.xml"},
	{"PHP", []string{"php"}, "composer.json"},
}

// ProjectTypeRule maps a predicate over the tree and fetched files to a type
type ProjectTypeRule struct {
	Type    ProjectType
	Matches func(tree []remote.TreeEntry, files map[string]string) bool
}

// ProjectTypeRules are evaluated in order; ProjectLibrary is the default
var ProjectTypeRules = []ProjectTypeRule{
	{ProjectContainerizedApp, func(tree []remote.TreeEntry, files map[string]string) bool {
		return anyTreePath(tree, "Dockerfile") || anyFetched(files, "Dockerfile")
	}},
	{ProjectWebApp, func(tree []remote.TreeEntry, _ map[string]string) bool {
		return anyTreePath(tree, "index.html", "app.js")
	}},
	{ProjectCLITool, func(tree []remote.TreeEntry, _ map[string]string) bool {
		return anyTreePath(tree, "main.go", "main.py")
	}},
}

// DetectLanguage returns the main language of a repository
func DetectLanguage(tree []remote.TreeEntry, files map[string]string) string {
	paths := make([]string, len(tree))
	for i, e := range tree {
		paths[i] = e.Path
	}
	exts := repoctx.Extensions(paths)

	for _, rule := range LanguageRules {
		for _, ext := range rule.Extensions {
			if exts[ext] {
				return rule.Language
			}
		}
		if anyFetched(files, rule.Manifest) {
			return rule.Language
		}
	}
	return LanguageUnknown
}

// DetectProjectType returns the project type of a repository
func DetectProjectType(tree []remote.TreeEntry, files map[string]string) ProjectType {
	for _, rule := range ProjectTypeRules {
		if rule.Matches(tree, files) {
			return rule.Type
		}
	}
	return ProjectLibrary
}

func anyFetched(files map[string]string, marker string) bool {
	for p := range files {
		if strings.Contains(p, marker) {
			return true
		}
	}
	return false
}

func anyTreePath(tree []remote.TreeEntry, markers ...string) bool {
	for _, e := range tree {
		for _, m := range markers {
			if strings.Contains(e.Path, m) {
				return true
			}
		}
	}
	return false
}
