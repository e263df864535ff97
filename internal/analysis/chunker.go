package analysis

import "strings"

// Chunk splits content into pieces of at most max bytes on line boundaries.
// Content that already fits is returned whole. A line longer than max is
// never split and forms its own chunk. Chunks are trimmed of surrounding
// whitespace.
func Chunk(content string, max int) []string {
	if len(content) <= max {
		return []string{content}
	}

	var (
		chunks  []string
		current strings.Builder
	)
	for _, line := range strings.Split(content, "\n") {
		if current.Len()+len(line) > max && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}
