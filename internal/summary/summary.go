// Package summary turns per-file signals into one repository summary, asking
// a generation service for an enriched version and falling back to
// heuristics when that fails.
package summary

// ProjectType classifies what kind of artifact a repository produces
type ProjectType string

const (
	ProjectContainerizedApp ProjectType = "containerized-app"
	ProjectWebApp           ProjectType = "web-app"
	ProjectCLITool          ProjectType = "cli-tool"
	ProjectLibrary          ProjectType = "library"
)

// RepositorySummary is the aggregate analysis handed to README generation.
// It is built once per run and not modified afterwards.
type RepositorySummary struct {
	ProjectType          ProjectType `json:"projectType" yaml:"project_type"`
	MainLanguage         string      `json:"mainLanguage" yaml:"main_language"`
	Dependencies         []string    `json:"dependencies" yaml:"dependencies" validate:"dive,required"`
	EntryPoints          []string    `json:"entryPoints" yaml:"entry_points" validate:"dive,required"`
	Features             []string    `json:"features" yaml:"features" validate:"dive,required"`
	InstallationCommands []string    `json:"installationCommands" yaml:"installation_commands" validate:"dive,required"`
	UsageExamples        []string    `json:"usageExamples" yaml:"usage_examples" validate:"dive,required"`
	ProjectDescription   string      `json:"projectDescription" yaml:"project_description" validate:"required"`
	TechStack            []string    `json:"techStack" yaml:"tech_stack" validate:"dive,required"`
	Architecture         string      `json:"architecture" yaml:"architecture"`
	DevelopmentSetup     string      `json:"developmentSetup" yaml:"development_setup"`
}

// Kind tells how a summary was produced
type Kind string

const (
	KindEnriched Kind = "enriched"
	KindFallback Kind = "fallback"
)

// Result is the outcome of Summarize. Err holds the enrichment failure when
// Kind is KindFallback; Summary is always usable.
type Result struct {
	Kind    Kind              `json:"kind" yaml:"kind"`
	Summary RepositorySummary `json:"summary" yaml:"summary"`
	Err     error             `json:"-" yaml:"-"`
}
