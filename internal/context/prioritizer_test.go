package context

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tara-vision/readmegen/internal/strategy"
)

func TestScore(t *testing.T) {
	tests := []struct {
		path     string
		category Category
		score    int
	}{
		{"go.mod", CategoryConfig, 12},
		{"services/api/go.mod", CategoryConfig, 10},
		{"cmd/server/main.go", CategorySource, 9},
		{"README.md", CategoryDocumentation, 10},
		{"docs/guide.md", CategoryDocumentation, 8},
		{"Dockerfile", CategoryBuild, 9},
		{"src/utils.ts", CategorySource, 6},
		{"scripts/release.rb", CategoryOther, 1},
		{"CHANGELOG.md", CategoryOther, 3},
		{"src/app.test.js", CategorySource, 3},
		{"node_modules/pkg/package.json", CategoryConfig, 5},
		{"build/output.txt", CategoryOther, 1},
		{"build.gradle", CategoryConfig, 12},
		{"spec/helpers/util.py", CategoryOther, 1},
		{"docs/package.json", CategoryConfig, 10},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			category, score := Score(tt.path)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.score, score)
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// contains both a manifest name and a docs directory
	category, score := Classify("docs/examples/package.json")
	assert.Equal(t, CategoryConfig, category)
	assert.Equal(t, 10, score)

	category, score = Classify("lib/main.dart")
	assert.Equal(t, CategorySource, category)
	assert.Equal(t, 9, score)
}

func TestPrioritizeOrdersAndTruncates(t *testing.T) {
	files := map[string]string{
		"README.md":            "# hello",
		"go.mod":               "module x",
		"internal/x/x.go":      "package x",
		"cmd/main.go":          "package main",
		"empty.txt":            "",
		"Dockerfile":           "FROM scratch",
		"internal/x/x_test.go": "package x",
	}

	got := Prioritize(files, strategy.Strategy{MaxFiles: 4})
	require.Len(t, got, 4)

	var paths []string
	for _, f := range got {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"go.mod", "README.md", "Dockerfile", "cmd/main.go"}, paths)

	assert.Equal(t, "module x", got[0].Content)
	assert.Equal(t, len("module x"), got[0].Size)
	assert.Equal(t, "go", got[0].Language)
	assert.Equal(t, CategoryConfig, got[0].Category)
}

func TestPrioritizeLengthAndOrderProperty(t *testing.T) {
	names := []string{"README.md", "src/a.ts", "lib/b.py", "x/test_c.py", "Makefile", "node_modules/d.js", "e.txt", "docs/f.md"}

	for n := 0; n <= len(names); n++ {
		files := make(map[string]string)
		for _, name := range names[:n] {
			files[name] = "content"
		}
		for _, m := range []int{1, 3, 5, 40} {
			t.Run(fmt.Sprintf("n=%d/m=%d", n, m), func(t *testing.T) {
				got := Prioritize(files, strategy.Strategy{MaxFiles: m})
				assert.Len(t, got, min(n, m))
				for i := 1; i < len(got); i++ {
					assert.GreaterOrEqual(t, got[i-1].Importance, got[i].Importance)
				}
				for _, f := range got {
					assert.GreaterOrEqual(t, f.Importance, 1)
				}
			})
		}
	}
}

func TestPrioritizeStableTies(t *testing.T) {
	files := map[string]string{"z.txt": "z", "a.txt": "a", "m.txt": "m"}
	got := Prioritize(files, strategy.Select(3, 3))
	require.Len(t, got, 3)
	assert.Equal(t, "a.txt", got[0].Path)
	assert.Equal(t, "m.txt", got[1].Path)
	assert.Equal(t, "z.txt", got[2].Path)
}

func TestDescribe(t *testing.T) {
	f := FileAnalysis{Path: "go.mod", Category: CategoryConfig, Language: "go"}
	assert.Equal(t, "config file go.mod (go)", f.Describe())

	f = FileAnalysis{Path: "LICENSE", Category: CategoryOther}
	assert.Equal(t, "other file LICENSE", f.Describe())
}

func TestDetectFileType(t *testing.T) {
	assert.Equal(t, "go", DetectFileType("cmd/main.go"))
	assert.Equal(t, "go", DetectFileType("go.mod"))
	assert.Equal(t, "dockerfile", DetectFileType("deploy/Dockerfile"))
	assert.Equal(t, "typescript", DetectFileType("src/index.tsx"))
	assert.Equal(t, "lock", DetectFileType("Cargo.lock"))
	assert.Equal(t, "", DetectFileType("LICENSE"))
}

func TestExtensions(t *testing.T) {
	exts := Extensions([]string{"a/b.GO", "c.py", "LICENSE", "d.tar.gz"})
	assert.Equal(t, map[string]bool{"go": true, "py": true, "gz": true}, exts)
}
