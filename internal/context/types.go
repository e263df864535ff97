package context

import "fmt"

// Category is the coarse kind of a repository file
type Category string

const (
	CategoryConfig        Category = "config"
	CategorySource        Category = "source"
	CategoryDocumentation Category = "documentation"
	CategoryBuild         Category = "build"
	CategoryOther         Category = "other"
)

// FileAnalysis is a fetched file with its classification and rank
type FileAnalysis struct {
	Path       string   `json:"path" yaml:"path"`
	Content    string   `json:"-" yaml:"-"`
	Category   Category `json:"category" yaml:"category"`
	Language   string   `json:"language,omitempty" yaml:"language,omitempty"`
	Importance int      `json:"importance" yaml:"importance"` // >= 1, higher is more important
	Size       int      `json:"size" yaml:"size"`
	Chunks     []string `json:"chunks,omitempty" yaml:"chunks,omitempty"` // set by analysis.Split when chunking applies
}

// Describe returns the classification-level description of the file
func (f FileAnalysis) Describe() string {
	if f.Language != "" {
		return fmt.Sprintf("%s file %s (%s)", f.Category, f.Path, f.Language)
	}
	return fmt.Sprintf("%s file %s", f.Category, f.Path)
}
