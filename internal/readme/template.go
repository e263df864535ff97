package readme

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/tara-vision/readmegen/internal/remote"
	"github.com/tara-vision/readmegen/internal/summary"
)

const readmeTemplate = `{{- with .Info.Logo}}![{{or $.Info.Title "Logo"}}]({{.}})

{{end -}}
# {{.Title}}

{{with .Badges}}{{range $i, $b := .}}{{if $i}} {{end}}![{{or $b.Alt "Badge"}}]({{$b.URL}}){{end}}

{{end -}}
{{.Description}}

{{with .Info.Tags}}**Tags:** {{range $i, $t := .}}{{if $i}}, {{end}}` + "`{{$t}}`" + `{{end}}

{{end -}}
{{if .TOC}}## Table of Contents

{{range .Sections}}- [{{.Title}}](#{{.Anchor}})
{{end}}
{{end -}}
{{range .Sections}}## {{.Title}}

{{.Body}}

{{end -}}
{{with .Info.Author}}{{if .Name}}## Author

**{{.Name}}**
{{with authorLinks .}}
{{.}}
{{end}}{{end}}{{end -}}
`

var readmeTmpl = template.Must(template.New("readme").Funcs(template.FuncMap{
	"authorLinks": authorLinks,
}).Parse(readmeTemplate))

type renderedSection struct {
	Title  string
	Anchor string
	Body   string
}

type templateData struct {
	Info        BasicInfo
	Title       string
	Description string
	Badges      []Badge
	TOC         bool
	Sections    []renderedSection
}

// Render builds the README locally from the summary and customization
func Render(s summary.RepositorySummary, c Customization, meta *remote.RepoMetadata) (string, error) {
	if meta == nil {
		meta = &remote.RepoMetadata{}
	}

	data := templateData{
		Info:        c.BasicInfo,
		Title:       firstNonEmpty(c.BasicInfo.Title, meta.Name, "Project"),
		Description: firstNonEmpty(c.BasicInfo.Description, s.ProjectDescription, meta.Description),
		Badges:      c.BasicInfo.Badges,
		TOC:         !c.Styling.HideTableOfContents,
	}
	if len(data.Badges) == 0 && !c.Styling.NoAutoBadges {
		data.Badges = autoBadges(s, meta)
	}

	for _, id := range c.Order() {
		if id == SectionBasic {
			continue
		}
		sec := c.Section(id)
		if sec.Disabled {
			continue
		}
		body := strings.TrimSpace(sec.Content)
		if body == "" {
			body = defaultBody(id, s, meta)
		}
		if body == "" {
			continue
		}
		data.Sections = append(data.Sections, renderedSection{
			Title:  sectionTitles[id],
			Anchor: id,
			Body:   body,
		})
	}

	var buf bytes.Buffer
	if err := readmeTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render readme: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

func defaultBody(id string, s summary.RepositorySummary, meta *remote.RepoMetadata) string {
	switch id {
	case SectionInstallation:
		return codeBlock("bash", s.InstallationCommands)
	case SectionUsage:
		return codeBlock("bash", s.UsageExamples)
	case SectionFeatures:
		if len(s.Features) == 0 {
			return ""
		}
		return "- " + strings.Join(s.Features, "\n- ")
	case SectionDevelopment:
		lines := []string{}
		if clone := cloneURL(meta); clone != "" {
			lines = append(lines, "# Clone the repository", "git clone "+clone, "")
		}
		if s.DevelopmentSetup != "" {
			lines = append(lines, s.DevelopmentSetup)
		}
		body := codeBlock("bash", lines)
		if s.Architecture != "" {
			body = s.Architecture + "\n\n" + body
		}
		return body
	case SectionContributing:
		return "Contributions are welcome! Please feel free to submit a Pull Request."
	case SectionLicense:
		if meta.License != "" {
			return fmt.Sprintf("This project is licensed under the %s License - see the [LICENSE](LICENSE) file for details.", meta.License)
		}
		return "See the [LICENSE](LICENSE) file for details."
	case SectionSupport:
		if meta.HTMLURL != "" {
			return fmt.Sprintf("If you run into a problem, please [open an issue](%s/issues).", meta.HTMLURL)
		}
		return "If you run into a problem, please open an issue."
	}
	return ""
}

func codeBlock(lang string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return "```" + lang + "\n" + strings.Join(lines, "\n") + "\n```"
}

func cloneURL(meta *remote.RepoMetadata) string {
	if meta.HTMLURL != "" {
		return meta.HTMLURL + ".git"
	}
	if meta.FullName != "" {
		return "https://github.com/" + meta.FullName + ".git"
	}
	return ""
}

func autoBadges(s summary.RepositorySummary, meta *remote.RepoMetadata) []Badge {
	var badges []Badge
	if s.MainLanguage != "" && s.MainLanguage != summary.LanguageUnknown {
		badges = append(badges, Badge{
			Alt: "Language",
			URL: "https://img.shields.io/badge/language-" + shieldEscape(s.MainLanguage) + "-blue",
		})
	}
	if meta.License != "" {
		badges = append(badges, Badge{
			Alt: "License",
			URL: "https://img.shields.io/badge/license-" + shieldEscape(meta.License) + "-green",
		})
	}
	return badges
}

// shieldEscape escapes a shields.io static badge segment
func shieldEscape(s string) string {
	s = strings.ReplaceAll(s, "-", "--")
	s = strings.ReplaceAll(s, "_", "__")
	return url.PathEscape(s)
}

func authorLinks(a Author) string {
	var links []string
	if a.GitHub != "" {
		links = append(links, "[GitHub]("+a.GitHub+")")
	}
	if a.Twitter != "" {
		links = append(links, "[Twitter]("+a.Twitter+")")
	}
	if a.Website != "" {
		links = append(links, "[Website]("+a.Website+")")
	}
	if a.Email != "" {
		links = append(links, "[Email](mailto:"+a.Email+")")
	}
	return strings.Join(links, " • ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
