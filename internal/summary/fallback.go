package summary

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/tara-vision/readmegen/internal/remote"
)

const (
	maxFallbackFeatures = 5
	minFeatureLength    = 10

	placeholderInstall  = "# Installation commands will be generated based on project type"
	placeholderUsage    = "# Usage examples will be generated based on project type"
	placeholderDevSetup = "# Development setup will be generated based on project type"
)

// Commands are the canned commands for one language
type Commands struct {
	Install  []string
	Usage    []string
	DevSetup string
}

// CannedCommands are keyed by lower-cased language name
var CannedCommands = map[string]Commands{
	"go": {
		Install:  []string{"go mod download", "go install ."},
		Usage:    []string{"go run main.go", "go build && ./app"},
		DevSetup: "go mod download && go run main.go",
	},
	"python": {
		Install:  []string{"pip install -r requirements.txt"},
		Usage:    []string{"python main.py", "python -m app"},
		DevSetup: "pip install -r requirements.txt && python main.py",
	},
	"javascript": {
		Install:  []string{"npm install"},
		Usage:    []string{"npm start", "node index.js"},
		DevSetup: "npm install && npm run dev",
	},
	"rust": {
		Install:  []string{"cargo build"},
		Usage:    []string{"cargo run", "cargo test"},
		DevSetup: "cargo build && cargo run",
	},
	"java": {
		Install: []string{"./mvnw install"},
	},
}

// CommandsFor returns the canned commands for language, with placeholders
// for anything the language has no entry for
func CommandsFor(language string) Commands {
	c := CannedCommands[strings.ToLower(language)]
	c.Install = slices.Clone(c.Install)
	c.Usage = slices.Clone(c.Usage)
	if len(c.Install) == 0 {
		c.Install = []string{placeholderInstall}
	}
	if len(c.Usage) == 0 {
		c.Usage = []string{placeholderUsage}
	}
	if c.DevSetup == "" {
		c.DevSetup = placeholderDevSetup
	}
	return c
}

var entryPointMarkers = []string{"main.go", "main.py", "index.js", "app.py"}

// EntryPoints returns the blob paths that look like program entry points
func EntryPoints(tree []remote.TreeEntry) []string {
	var entries []string
	for _, e := range tree {
		if !e.IsBlob() {
			continue
		}
		for _, m := range entryPointMarkers {
			if strings.Contains(e.Path, m) {
				entries = append(entries, e.Path)
				break
			}
		}
	}
	return entries
}

var bulletPrefix = regexp.MustCompile(`^[\s\-\*]+`)

// ReadmeFeatures scans fetched README files for bullet-like lines
func ReadmeFeatures(files map[string]string) []string {
	var readmes []string
	for p := range files {
		if strings.Contains(p, "README") {
			readmes = append(readmes, p)
		}
	}
	sort.Strings(readmes)

	var features []string
	for _, p := range readmes {
		for _, line := range strings.Split(files[p], "\n") {
			if !strings.ContainsAny(line, "-*") {
				continue
			}
			feature := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
			if len(feature) > minFeatureLength {
				features = append(features, feature)
			}
			if len(features) == maxFallbackFeatures {
				return features
			}
		}
	}
	return features
}

// Fallback builds a summary from heuristics alone. It never fails and
// fills every field.
func Fallback(meta *remote.RepoMetadata, tree []remote.TreeEntry, files map[string]string, language string, projectType ProjectType) RepositorySummary {
	commands := CommandsFor(language)

	description := ""
	if meta != nil {
		description = meta.Description
	}
	if description == "" {
		description = "A " + language + " project"
	}

	return RepositorySummary{
		ProjectType:          projectType,
		MainLanguage:         language,
		Dependencies:         nonNil(ScanDependencies(files)),
		EntryPoints:          nonNil(EntryPoints(tree)),
		Features:             nonNil(ReadmeFeatures(files)),
		InstallationCommands: commands.Install,
		UsageExamples:        commands.Usage,
		ProjectDescription:   description,
		TechStack:            []string{language},
		Architecture:         "",
		DevelopmentSetup:     commands.DevSetup,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
