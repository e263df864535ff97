package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tara-vision/readmegen/internal/pipeline"
	"github.com/tara-vision/readmegen/internal/provider"
	"github.com/tara-vision/readmegen/internal/storage"
)

// Renderer handles all UI output formatting
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// WelcomeMessage returns the styled welcome banner
func (r *Renderer) WelcomeMessage() string {
	var sb strings.Builder

	title := TitleStyle.Render(IconStar + " readmegen")
	subtitle := Subtle.Render("README generator for GitHub repositories")

	sb.WriteString(fmt.Sprintf("%s - %s\n", title, subtitle))
	sb.WriteString(Subtle.Render("Enter owner/repo[@branch] or a GitHub URL. Type '/help' for commands, 'exit' to quit"))
	sb.WriteString("\n")
	return sb.String()
}

// HelpMessage lists the interactive commands
func (r *Renderer) HelpMessage() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Commands") + "\n")
	rows := [][2]string{
		{"owner/repo[@branch]", "analyze a repository and generate its README"},
		{"https://github.com/…", "same, from a repository URL"},
		{"/history", "list previous runs"},
		{"/show <id>", "preview the README of a run"},
		{"/save <id> [path]", "write the README of a run (default README.md)"},
		{"/help", "show this help"},
		{"exit", "quit"},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", row[0], Subtle.Render(row[1])))
	}
	return sb.String()
}

var stageLabels = map[pipeline.Stage]string{
	pipeline.StageFetching:    "Fetching",
	pipeline.StageSelecting:   "Selecting files",
	pipeline.StageAnalyzing:   "Analyzing",
	pipeline.StageSummarizing: "Summarizing",
	pipeline.StageGenerating:  "Generating README",
	pipeline.StageDone:        "Done",
	pipeline.StageFailed:      "Failed",
}

// StageMessage formats a stage transition
func (r *Renderer) StageMessage(stage pipeline.Stage, detail string) string {
	label := stageLabels[stage]
	if label == "" {
		label = string(stage)
	}
	msg := label
	if detail != "" {
		msg += " " + Subtle.Render("("+detail+")")
	}

	switch stage {
	case pipeline.StageDone:
		return StageDone.Render(IconSuccess+" ") + msg
	case pipeline.StageFailed:
		return StageFailed.Render(IconError+" ") + msg
	default:
		return StageActive.Render(IconArrow+" ") + msg
	}
}

// RunSummary formats the outcome of a run
func (r *Renderer) RunSummary(res *pipeline.Result) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(IconRepo+" "+res.Repository) + "\n")

	s := res.Summary.Summary
	row := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(LabelStyle.Render(label) + value + "\n")
	}
	row("Run", res.ID)
	row("Branch", res.Branch)
	row("Size", fmt.Sprintf("%d files, %s", res.TotalFiles, formatBytes(res.TotalBytes)))
	row("Strategy", res.Strategy.String())
	row("Analyzed", fmt.Sprintf("%d of %d fetched files", len(res.Signals), len(res.Fetched)))
	row("Language", s.MainLanguage)
	row("Type", string(s.ProjectType))
	row("Summary", string(res.Summary.Kind))
	row("README", string(res.Source))
	row("Took", formatTimings(res.Timings))

	if res.Summary.Err != nil {
		sb.WriteString(r.WarningMessage("enrichment failed: "+res.Summary.Err.Error()) + "\n")
	}
	if res.ReadmeErr != nil {
		sb.WriteString(r.WarningMessage("generation failed: "+res.ReadmeErr.Error()) + "\n")
	}
	return sb.String()
}

// HistoryTable formats stored runs, newest first
func (r *Renderer) HistoryTable(runs []storage.RunMetadata) string {
	if len(runs) == 0 {
		return Subtle.Render("No runs recorded yet.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(InfoStyle.Render(IconHistory+" Runs") + "\n")
	for _, run := range runs {
		id := run.ID
		if len(id) > 8 {
			id = id[:8]
		}
		sb.WriteString(fmt.Sprintf("  %s  %-30s %-18s %-10s %s\n",
			Bold.Render(id),
			run.Repository,
			run.ProjectType,
			run.Language,
			Subtle.Render(run.CreatedAt.Local().Format("2006-01-02 15:04")),
		))
	}
	return sb.String()
}

// PromptString returns the styled prompt
func (r *Renderer) PromptString() string {
	return PromptStyle.Render("❯") + " "
}

// ErrorMessage formats an error message
func (r *Renderer) ErrorMessage(err error) string {
	return StageFailed.Render(fmt.Sprintf("%s Error: %v", IconError, err))
}

// WarningMessage formats a warning message
func (r *Renderer) WarningMessage(msg string) string {
	return WarningStyle.Render(fmt.Sprintf("%s %s", IconWarning, msg))
}

// InfoMessage formats an info message
func (r *Renderer) InfoMessage(msg string) string {
	return InfoStyle.Render(fmt.Sprintf("%s %s", IconInfo, msg))
}

// SuccessMessage formats a success message
func (r *Renderer) SuccessMessage(msg string) string {
	return SuccessStyle.Render(fmt.Sprintf("%s %s", IconSuccess, msg))
}

// ProviderMessage formats provider information for display
func (r *Renderer) ProviderMessage(info *provider.Info) string {
	if info == nil {
		return Subtle.Render(IconTip+" No generation service configured, using templates") + "\n"
	}
	return SuccessStyle.Render(fmt.Sprintf("%s Connected to %s (%s)", IconSuccess, info.Name, info.Model)) + "\n"
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func formatTimings(t map[pipeline.Stage]time.Duration) string {
	if len(t) == 0 {
		return ""
	}
	var total time.Duration
	stages := make([]string, 0, len(t))
	for s, d := range t {
		total += d
		stages = append(stages, fmt.Sprintf("%s %s", s, d.Round(time.Millisecond)))
	}
	sort.Strings(stages)
	return fmt.Sprintf("%s (%s)", total.Round(time.Millisecond), strings.Join(stages, ", "))
}
