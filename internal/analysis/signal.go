// Package analysis extracts per-file signals with a generation service,
// splitting oversized files into chunks and running files in paced batches.
package analysis

import (
	"strings"

	repoctx "github.com/tara-vision/readmegen/internal/context"
)

const (
	minImportance = 1
	maxImportance = 10
)

// Signal is what one analyzed file contributes to the repository summary
type Signal struct {
	Path         string           `json:"path" yaml:"path"`
	Category     repoctx.Category `json:"category" yaml:"category"`
	FileType     string           `json:"fileType" yaml:"file_type"`
	Dependencies []string         `json:"dependencies" yaml:"dependencies"`
	Scripts      []string         `json:"scripts" yaml:"scripts"`
	EntryPoints  []string         `json:"entryPoints" yaml:"entry_points"`
	Features     []string         `json:"features" yaml:"features"`
	Description  string           `json:"description" yaml:"description"`
	Importance   int              `json:"importance" yaml:"importance"`
	Chunks       int              `json:"chunks,omitempty" yaml:"chunks,omitempty"`
}

// Extraction is the structured answer for one file or chunk
type Extraction struct {
	FileType     string
	Dependencies []string
	Scripts      []string
	EntryPoints  []string
	Features     []string
	Description  string
	Importance   int // 0 when the service gave none
}

// classified returns the signal that carries only the file's classification
func classified(file repoctx.FileAnalysis) Signal {
	return Signal{
		Path:        file.Path,
		Category:    file.Category,
		FileType:    string(file.Category),
		Description: file.Describe(),
		Importance:  clampImportance(file.Importance),
	}
}

// merger accumulates list fields as an ordered, de-duplicated union
type merger struct {
	seen map[string]map[string]bool
}

func newMerger() *merger {
	return &merger{seen: map[string]map[string]bool{}}
}

func (m *merger) add(field string, dst []string, items []string) []string {
	set := m.seen[field]
	if set == nil {
		set = map[string]bool{}
		m.seen[field] = set
	}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || set[item] {
			continue
		}
		set[item] = true
		dst = append(dst, item)
	}
	return dst
}

func (m *merger) merge(s *Signal, e Extraction) {
	s.Dependencies = m.add("dependencies", s.Dependencies, e.Dependencies)
	s.Scripts = m.add("scripts", s.Scripts, e.Scripts)
	s.EntryPoints = m.add("entryPoints", s.EntryPoints, e.EntryPoints)
	s.Features = m.add("features", s.Features, e.Features)
}

func clampImportance(v int) int {
	if v < minImportance {
		return minImportance
	}
	if v > maxImportance {
		return maxImportance
	}
	return v
}
