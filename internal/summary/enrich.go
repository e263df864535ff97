package summary

import (
	"fmt"
	"strings"

	"github.com/tara-vision/readmegen/internal/analysis"
	"github.com/tara-vision/readmegen/internal/remote"
)

// maxEnrichedList bounds each list field taken from an enriched summary
const maxEnrichedList = 20

// PromptInput is everything the enrichment prompt describes
type PromptInput struct {
	Meta        *remote.RepoMetadata
	Signals     []analysis.Signal
	TotalFiles  int
	Language    string
	ProjectType ProjectType
}

// EnrichmentPrompt builds the request for a structured repository summary
func EnrichmentPrompt(in PromptInput) string {
	name, description, language := "", "No description provided", in.Language
	if in.Meta != nil {
		name = in.Meta.Name
		if in.Meta.Description != "" {
			description = in.Meta.Description
		}
		if in.Meta.Language != "" {
			language = in.Meta.Language
		}
	}
	if language == "" {
		language = LanguageUnknown
	}

	var b strings.Builder
	b.WriteString("You are an expert software developer analyzing a GitHub repository to generate a comprehensive README.\n\n")
	b.WriteString("Repository Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", name)
	fmt.Fprintf(&b, "- Description: %s\n", description)
	fmt.Fprintf(&b, "- Language: %s\n", language)
	fmt.Fprintf(&b, "- Total Files: %d\n", in.TotalFiles)
	fmt.Fprintf(&b, "- Analyzed Files: %d\n\n", len(in.Signals))

	b.WriteString("File Analysis Summary:\n")
	digests := make([]string, len(in.Signals))
	for i, s := range in.Signals {
		digests[i] = signalDigest(s)
	}
	b.WriteString(strings.Join(digests, "\n"))

	b.WriteString("\nBased on this analysis, provide a comprehensive README structure. Return ONLY valid JSON without any markdown formatting:\n\n")
	lang := in.Language
	fmt.Fprintf(&b, `{
    "projectType": "%s",
    "mainLanguage": "%s",
    "dependencies": ["list of main dependencies based on the analysis"],
    "entryPoints": ["main entry files found in the repository"],
    "features": ["key features of the project based on code analysis"],
    "installationCommands": ["appropriate installation commands for %s"],
    "usageExamples": ["code examples for basic usage in %s"],
    "projectDescription": "comprehensive 2-3 sentence description of what this project does",
    "techStack": ["technologies and frameworks used"],
    "architecture": "brief architecture overview based on file structure",
    "developmentSetup": "development setup instructions for %s"
}
`, in.ProjectType, lang, lang, lang, lang)

	b.WriteString(`
Important:
- For Go projects, use "go mod" commands, not npm
- For Python projects, use "pip" commands
- For Node.js projects, use "npm" commands
- For Rust projects, use "cargo" commands
- Return ONLY the JSON object, no markdown formatting
`)
	return b.String()
}

func signalDigest(s analysis.Signal) string {
	fileType := strings.ToUpper(s.FileType)
	if fileType == "" {
		fileType = "FILE"
	}
	description := s.Description
	if description == "" {
		description = "No description"
	}
	return fmt.Sprintf("\n%s: %s\n- Dependencies: %s\n- Scripts: %s\n- Features: %s\n",
		fileType, description, joinOrNone(s.Dependencies), joinOrNone(s.Scripts), joinOrNone(s.Features))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

// completeWith fills the gaps of an enriched summary from the heuristic one
// and bounds its lists
func completeWith(enriched, fallback RepositorySummary) RepositorySummary {
	out := enriched
	if out.ProjectType == "" {
		out.ProjectType = fallback.ProjectType
	}
	if out.MainLanguage == "" {
		out.MainLanguage = fallback.MainLanguage
	}
	out.Dependencies = listOr(out.Dependencies, fallback.Dependencies)
	out.EntryPoints = listOr(out.EntryPoints, fallback.EntryPoints)
	out.Features = listOr(out.Features, fallback.Features)
	out.InstallationCommands = listOr(out.InstallationCommands, fallback.InstallationCommands)
	out.UsageExamples = listOr(out.UsageExamples, fallback.UsageExamples)
	out.TechStack = listOr(out.TechStack, fallback.TechStack)
	if strings.TrimSpace(out.DevelopmentSetup) == "" {
		out.DevelopmentSetup = fallback.DevelopmentSetup
	}
	return out
}

func listOr(list, fallback []string) []string {
	if len(list) == 0 {
		return fallback
	}
	if len(list) > maxEnrichedList {
		list = list[:maxEnrichedList]
	}
	return list
}
