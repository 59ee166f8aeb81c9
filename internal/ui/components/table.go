package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableRow is one label/value pair of a Table.
type TableRow struct {
	Label string
	Value string
}

const (
	tableMaxLabel = 24
	tableGap      = 2
)

// Table renders label/value rows with the labels aligned, inside a titled
// box. Both columns are clamped so no line overflows the box.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}
	body := tableBody(rows, BoxContentWidth(width))
	if title == "" {
		return Box(body, width)
	}
	return TitledBox(title, body, width)
}

func tableBody(rows []TableRow, inner int) string {
	longest := 0
	for _, r := range rows {
		longest = max(longest, lipgloss.Width(SanitizeOneLine(r.Label)))
	}
	if inner <= 0 {
		inner = longest + 8
	}
	labelWidth := min(longest, tableMaxLabel, max(inner/2, 4))
	valueWidth := max(inner-labelWidth-tableGap, 4)

	lines := make([]string, len(rows))
	for i, r := range rows {
		label := padRight(ClampTextWidth(r.Label, labelWidth), labelWidth)
		lines[i] = labelStyle.Render(label) + strings.Repeat(" ", tableGap) + valueStyle.Render(ClampTextWidth(r.Value, valueWidth))
	}
	return strings.Join(lines, "\n")
}
