package context

import (
	"path"
	"strings"
)

// specialNames maps extensionless (or misleading) file names to a type
var specialNames = map[string]string{
	"makefile":       "makefile",
	"gnumakefile":    "makefile",
	"dockerfile":     "dockerfile",
	"vagrantfile":    "ruby",
	"rakefile":       "ruby",
	"gemfile":        "ruby",
	"procfile":       "procfile",
	"cmakelists.txt": "cmake",
	"go.mod":         "go",
}

var extensionTypes = map[string]string{
	".go":    "go",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".py":    "python",
	".pyi":   "python",
	".rs":    "rust",
	".rb":    "ruby",
	".java":  "java",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".scala": "scala",
	".c":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".h":     "header",
	".hpp":   "header",
	".cs":    "csharp",
	".swift": "swift",
	".php":   "php",
	".dart":  "dart",
	".lua":   "lua",
	".sh":    "shell",
	".bash":  "shell",
	".sql":   "sql",
	".md":    "markdown",
	".rst":   "rst",
	".txt":   "text",
	".yaml":  "yaml",
	".yml":   "yaml",
	".json":  "json",
	".toml":  "toml",
	".xml":   "xml",
	".html":  "html",
	".css":   "css",
	".scss":  "css",
	".vue":   "vue",
	".proto": "protobuf",
	".tf":    "terraform",
	".ex":    "elixir",
	".exs":   "elixir",
}

// DetectFileType returns a language/type identifier for a slash-separated path.
// Unknown extensions come back without the dot; extensionless files return "".
func DetectFileType(p string) string {
	base := strings.ToLower(path.Base(p))
	if t, ok := specialNames[base]; ok {
		return t
	}

	ext := path.Ext(base)
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return strings.TrimPrefix(ext, ".")
}

// Extensions returns the set of lower-cased extensions (without the dot) present in paths
func Extensions(paths []string) map[string]bool {
	exts := make(map[string]bool)
	for _, p := range paths {
		if ext := strings.TrimPrefix(strings.ToLower(path.Ext(p)), "."); ext != "" {
			exts[ext] = true
		}
	}
	return exts
}
