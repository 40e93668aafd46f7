// Package render formats browser state for the terminal and for structured output.
package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Markdown renders markdown content for terminal display, wrapped at width.
// If noColor is true, returns the content unchanged.
func Markdown(content string, width int, noColor bool) (string, error) {
	if noColor {
		return content, nil
	}
	if width <= 0 {
		width = defaultWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	result, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return result, nil
}
