package storage

import (
	"time"

	"github.com/tara-vision/readmegen/internal/remote"
	"github.com/tara-vision/readmegen/internal/strategy"
	"github.com/tara-vision/readmegen/internal/summary"
)

// Run is one persisted pipeline execution
type Run struct {
	ID           string                    `json:"id" yaml:"id"`
	Repository   string                    `json:"repository" yaml:"repository"` // owner/name
	Branch       string                    `json:"branch,omitempty" yaml:"branch,omitempty"`
	CreatedAt    time.Time                 `json:"created_at" yaml:"created_at"`
	Metadata     *remote.RepoMetadata      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Strategy     strategy.Strategy         `json:"strategy" yaml:"strategy"`
	TotalFiles   int                       `json:"total_files" yaml:"total_files"`
	Fetched      []string                  `json:"fetched" yaml:"fetched"`
	Analyzed     int                       `json:"analyzed" yaml:"analyzed"`
	Summary      summary.RepositorySummary `json:"summary" yaml:"summary"`
	SummaryKind  summary.Kind              `json:"summary_kind" yaml:"summary_kind"`
	Readme       string                    `json:"readme" yaml:"readme"`
	ReadmeSource string                    `json:"readme_source" yaml:"readme_source"`
	Timings      map[string]time.Duration  `json:"timings,omitempty" yaml:"timings,omitempty"`
}

// RunIndex tracks all runs, oldest first
type RunIndex struct {
	Runs []RunMetadata `json:"runs"`
}

// RunMetadata contains summary information about a run
type RunMetadata struct {
	ID           string    `json:"id"`
	Repository   string    `json:"repository"`
	CreatedAt    time.Time `json:"created_at"`
	ProjectType  string    `json:"project_type"`
	Language     string    `json:"language"`
	ReadmeSource string    `json:"readme_source"`
}

func (r *Run) metadata() RunMetadata {
	return RunMetadata{
		ID:           r.ID,
		Repository:   r.Repository,
		CreatedAt:    r.CreatedAt,
		ProjectType:  string(r.Summary.ProjectType),
		Language:     r.Summary.MainLanguage,
		ReadmeSource: r.ReadmeSource,
	}
}
