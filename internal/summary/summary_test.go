package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tara-vision/readmegen/internal/analysis"
	"github.com/tara-vision/readmegen/internal/provider"
	"github.com/tara-vision/readmegen/internal/remote"
)

func blobs(paths ...string) []remote.TreeEntry {
	tree := make([]remote.TreeEntry, len(paths))
	for i, p := range paths {
		tree[i] = remote.TreeEntry{Path: p, Kind: remote.KindBlob, Size: 100}
	}
	return tree
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const goMod = `module github.com/acme/tool

go 1.22

require (
	github.com/spf13/cobra v1.8.1
	github.com/stretchr/testify v1.9.0
	golang.org/x/sys v0.20.0 // indirect
)
`

func TestGoDetectionAndInstallCommands(t *testing.T) {
	tree := blobs("go.mod", "main.go", "internal/app/app.go")
	files := map[string]string{"go.mod": goMod}

	lang := DetectLanguage(tree, files)
	assert.Equal(t, "Go", lang)

	s := Fallback(&remote.RepoMetadata{Name: "tool"}, tree, files, lang, DetectProjectType(tree, files))
	assert.Equal(t, []string{"go mod download", "go install ."}, s.InstallationCommands)
	assert.Equal(t, []string{"github.com/spf13/cobra", "github.com/stretchr/testify"}, s.Dependencies)
	assert.Equal(t, ProjectCLITool, s.ProjectType)
	assert.Equal(t, "A Go project", s.ProjectDescription)
}

func TestDockerfileWinsProjectType(t *testing.T) {
	tree := blobs("Dockerfile", "public/index.html", "main.py", "app.js")
	files := map[string]string{"Dockerfile": "FROM alpine\n", "main.py": "print()"}

	assert.Equal(t, ProjectContainerizedApp, DetectProjectType(tree, files))
}

func TestDetectProjectTypeOrder(t *testing.T) {
	tests := []struct {
		name string
		tree []remote.TreeEntry
		want ProjectType
	}{
		{"web", blobs("public/index.html", "main.go"), ProjectWebApp},
		{"cli", blobs("cmd/tool/main.go"), ProjectCLITool},
		{"library", blobs("lib.rs", "Cargo.toml"), ProjectLibrary},
		// Dockerfile only in the tree, not fetched
		{"unfetched dockerfile", blobs("Dockerfile", "public/index.html", "main.go"), ProjectContainerizedApp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectProjectType(tt.tree, map[string]string{}))
		})
	}
}

func TestDetectLanguageOrder(t *testing.T) {
	tests := []struct {
		name  string
		tree  []remote.TreeEntry
		files map[string]string
		want  string
	}{
		{"go beats python", blobs("tools/gen.py", "main.go"), nil, "Go"},
		{"python by manifest", blobs("README.md"), map[string]string{"requirements.txt": "flask"}, "Python"},
		{"typescript is javascript", blobs("src/index.ts"), nil, "JavaScript"},
		{"rust", blobs("src/lib.rs"), nil, "Rust"},
		{"java by pom", blobs("docs/x.md"), map[string]string{"pom.xml": "<project/>"}, "Java"},
		{"php", blobs("index.php"), nil, "PHP"},
		{"unknown", blobs("README.md", "LICENSE"), nil, LanguageUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.tree, tt.files))
		})
	}
}

func TestScanDependencies(t *testing.T) {
	files := map[string]string{
		"package.json":        `{"dependencies":{"react":"^18","axios":"1.6"},"devDependencies":{"jest":"29"}}`,
		"requirements.txt":    "# web\nflask==3.0\n\nrequests\n",
		"Cargo.toml":          "[package]\nname = \"x\"\n\n[dependencies]\nserde = \"1\"\ntokio = { version = \"1\", features = [\"full\"] }\n",
		"broken/package.json": "{not json",
	}

	deps := ScanDependencies(files)
	assert.Equal(t, []string{"serde", "tokio", "axios", "react", "flask==3.0", "requests"}, deps)
}

func TestScanDependenciesLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		b.WriteString("pkg")
		b.WriteByte(byte('a' + i))
		b.WriteByte('\n')
	}
	deps := ScanDependencies(map[string]string{"requirements.txt": b.String()})
	assert.Len(t, deps, 10)
	assert.Equal(t, "pkga", deps[0])
}

func TestReadmeFeatures(t *testing.T) {
	readme := strings.Join([]string{
		"# Tool",
		"- Fast incremental builds",
		"* Plugin system for custom steps",
		"- short",
		"Plain prose line without bullets here",
		"  - Nested bullet that is long enough",
		"- Feature four is here",
		"- Feature five is here",
		"- Feature six is dropped",
	}, "\n")

	features := ReadmeFeatures(map[string]string{"README.md": readme, "main.go": "- not a readme line here"})
	assert.Equal(t, []string{
		"Fast incremental builds",
		"Plugin system for custom steps",
		"Nested bullet that is long enough",
		"Feature four is here",
		"Feature five is here",
	}, features)
}

func TestEntryPoints(t *testing.T) {
	tree := append(blobs("cmd/api/main.go", "web/index.js", "lib.go"), remote.TreeEntry{Path: "main.go.d", Kind: remote.KindTree})
	assert.Equal(t, []string{"cmd/api/main.go", "web/index.js"}, EntryPoints(tree))
}

func TestCommandsFor(t *testing.T) {
	java := CommandsFor("Java")
	assert.Equal(t, []string{"./mvnw install"}, java.Install)
	assert.Equal(t, []string{placeholderUsage}, java.Usage)
	assert.Equal(t, placeholderDevSetup, java.DevSetup)

	unknown := CommandsFor(LanguageUnknown)
	assert.Equal(t, []string{placeholderInstall}, unknown.Install)
}

func TestEnrichmentFailureFallsBack(t *testing.T) {
	boom := errors.New("service unavailable")
	gen := provider.GeneratorFunc(func(context.Context, provider.Request) (string, error) { return "", boom })

	tree := blobs("go.mod", "main.go", "README.md")
	files := map[string]string{"go.mod": goMod, "README.md": "- Generates reports from logs"}
	meta := &remote.RepoMetadata{Name: "tool", Description: "Log reporter"}

	res := New(gen, quietLogger()).Summarize(context.Background(), meta, nil, tree, files)

	assert.Equal(t, KindFallback, res.Kind)
	assert.ErrorIs(t, res.Err, boom)

	s := res.Summary
	assert.Equal(t, ProjectCLITool, s.ProjectType)
	assert.Equal(t, "Go", s.MainLanguage)
	assert.NotEmpty(t, s.Dependencies)
	assert.Equal(t, []string{"main.go"}, s.EntryPoints)
	assert.Equal(t, []string{"Generates reports from logs"}, s.Features)
	assert.NotEmpty(t, s.InstallationCommands)
	assert.NotEmpty(t, s.UsageExamples)
	assert.Equal(t, "Log reporter", s.ProjectDescription)
	assert.Equal(t, []string{"Go"}, s.TechStack)
	assert.NotEmpty(t, s.DevelopmentSetup)
}

func TestFallbackFieldsNeverNil(t *testing.T) {
	s := Fallback(nil, nil, nil, LanguageUnknown, ProjectLibrary)
	assert.NotNil(t, s.Dependencies)
	assert.NotNil(t, s.EntryPoints)
	assert.NotNil(t, s.Features)
	assert.Equal(t, "A Unknown project", s.ProjectDescription)
}

func TestSummarizeEnriched(t *testing.T) {
	var req provider.Request
	gen := provider.GeneratorFunc(func(_ context.Context, r provider.Request) (string, error) {
		req = r
		return "```json\n" + `{
  "mainLanguage": "Go",
  "dependencies": ["cobra"],
  "features": ["Fast"],
  "installationCommands": ["go install github.com/acme/tool@latest"],
  "projectDescription": "A tool that does things.",
  "architecture": "cmd + internal packages"
}` + "\n```", nil
	})

	tree := blobs("go.mod", "cmd/tool/main.go")
	signals := []analysis.Signal{{
		Path: "go.mod", FileType: "config", Description: "module file",
		Dependencies: []string{"cobra", "viper"}, Scripts: nil,
	}}

	res := New(gen, quietLogger()).Summarize(context.Background(), &remote.RepoMetadata{Name: "tool"}, signals, tree, map[string]string{"go.mod": goMod})
	require.Equal(t, KindEnriched, res.Kind)
	require.NoError(t, res.Err)

	s := res.Summary
	assert.Equal(t, ProjectCLITool, s.ProjectType, "missing projectType takes the detected value")
	assert.Equal(t, []string{"cobra"}, s.Dependencies)
	assert.Equal(t, []string{"cmd/tool/main.go"}, s.EntryPoints, "empty list falls back per field")
	assert.Equal(t, []string{"go install github.com/acme/tool@latest"}, s.InstallationCommands)
	assert.Equal(t, "cmd + internal packages", s.Architecture)
	assert.Equal(t, "go mod download && go run main.go", s.DevelopmentSetup)

	assert.InDelta(t, 0.2, req.Temperature, 0.0001)
	assert.Contains(t, req.Prompt, "- Name: tool")
	assert.Contains(t, req.Prompt, "- Total Files: 2")
	assert.Contains(t, req.Prompt, "- Analyzed Files: 1")
	assert.Contains(t, req.Prompt, "CONFIG: module file\n- Dependencies: cobra, viper\n- Scripts: None")
	assert.Contains(t, req.Prompt, `"projectType": "cli-tool"`)
	assert.Contains(t, req.Prompt, `use "go mod" commands`)
}

func TestSummarizeRejectsInvalidEnrichment(t *testing.T) {
	tests := map[string]string{
		"missing description": `{"projectType":"library","dependencies":["x"]}`,
		"blank list item":     `{"projectDescription":"ok","features":["fine",""]}`,
		"not json":            "Sorry, I can't do that.",
	}
	for name, reply := range tests {
		t.Run(name, func(t *testing.T) {
			gen := provider.GeneratorFunc(func(context.Context, provider.Request) (string, error) { return reply, nil })
			res := New(gen, quietLogger()).Summarize(context.Background(), nil, nil, blobs("lib.py"), nil)
			assert.Equal(t, KindFallback, res.Kind)
			assert.Error(t, res.Err)
			assert.Equal(t, "Python", res.Summary.MainLanguage)
		})
	}
}

func TestSummarizeWithoutGenerator(t *testing.T) {
	res := New(nil, quietLogger()).Summarize(context.Background(), nil, nil, blobs("src/main.rs"), nil)
	assert.Equal(t, KindFallback, res.Kind)
	assert.Equal(t, []string{"cargo build"}, res.Summary.InstallationCommands)
}
