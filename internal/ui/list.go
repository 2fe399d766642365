package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"vtriage/internal/models"
)

// rowMarker is the two-character gutter showing selection membership.
func rowMarker(selected, inPreview bool) string {
	switch {
	case inPreview:
		return "▒ "
	case selected:
		return "● "
	default:
		return "  "
	}
}

// renderRow renders one video line: gutter, cursor, title and channel,
// truncated to width.
func renderRow(v models.Video, width int, selected, inPreview, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = styles.cursor.Render("> ")
	}

	line := fmt.Sprintf("%s — %s", v.Title, v.Channel())
	if v.IsShort {
		line += " [short]"
	}

	avail := width - 4
	if avail > 0 && lipgloss.Width(line) > avail {
		line = truncateLine(line, avail)
	}

	switch {
	case inPreview:
		line = styles.preview.Render(line)
	case selected:
		line = styles.selected.Render(line)
	}

	return cursor + rowMarker(selected, inPreview) + line
}

func truncateLine(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
