package render

import (
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minWidth     = 40
	maxWidth     = 120
)

// TerminalWidth returns the output width, using COLUMNS env var or the terminal size.
// defaults to 80 if detection fails, clamped to [40, 120].
func TerminalWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return clampWidth(w)
		}
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return clampWidth(w)
	}
	return defaultWidth
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func clampWidth(w int) int {
	return min(max(w, minWidth), maxWidth)
}

// wrapText wraps text to width characters, breaking on word boundaries.
// continuation lines are prefixed with indent.
func wrapText(text string, width int, indent string) string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case i == 0:
			lineLen = wordLen
		case lineLen+1+wordLen <= width:
			result.WriteString(" ")
			lineLen += 1 + wordLen
		default:
			result.WriteString("\n" + indent)
			lineLen = utf8.RuneCountInString(indent) + wordLen
		}
		result.WriteString(word)
	}
	return result.String()
}
