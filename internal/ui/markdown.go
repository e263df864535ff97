package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the preview width used when the terminal width is unknown
const DefaultWordWrap = 100

var markdownRenderer *glamour.TermRenderer

func init() {
	SetWordWrap(DefaultWordWrap)
}

// RenderMarkdown renders a README preview for the terminal. Plain text is
// returned when rendering is disabled or fails.
func RenderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

// SetWordWrap reinitializes the renderer with a new word wrap width
func SetWordWrap(width int) {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// DisableMarkdown makes RenderMarkdown return plain text
func DisableMarkdown() {
	markdownRenderer = nil
}

// IsMarkdownEnabled returns whether markdown rendering is available
func IsMarkdownEnabled() bool {
	return markdownRenderer != nil
}
