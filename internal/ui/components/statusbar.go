package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const hintGap = 3

var (
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#c9a24b")).
			Bold(true).
			Padding(0, 1)
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	contextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5b6fb0")).
			Italic(true)
	statusRuleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#273540"))
)

// Hint formats one key binding as a key cap followed by its action.
func Hint(key, desc string) string {
	return keyCapStyle.Render(key) + " " + hintDescStyle.Render(desc)
}

// StatusBar renders the footer: a rule, an optional context line such as the
// signed-in admin, and the hints wrapped into centered rows of at most width.
func StatusBar(context string, hints []string, width int) string {
	var lines []string
	if width > 0 {
		lines = append(lines, statusRuleStyle.Render(strings.Repeat("─", width)))
	}
	if c := SanitizeOneLine(context); c != "" {
		lines = append(lines, center(contextStyle.Render(ClampTextWidthEllipsis(c, width)), width))
	}
	for _, row := range wrapHints(hints, width) {
		lines = append(lines, center(row, width))
	}
	return strings.Join(lines, "\n")
}

// wrapHints packs hints left to right, starting a new row when the next one
// would not fit.
func wrapHints(hints []string, width int) []string {
	gap := strings.Repeat(" ", hintGap)
	if width <= 0 {
		return []string{strings.Join(hints, gap)}
	}
	var rows []string
	var row []string
	rowWidth := 0
	for _, h := range hints {
		w := lipgloss.Width(h)
		if len(row) > 0 && rowWidth+hintGap+w > width {
			rows = append(rows, strings.Join(row, gap))
			row, rowWidth = nil, 0
		}
		if len(row) > 0 {
			rowWidth += hintGap
		}
		row = append(row, h)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, gap))
	}
	return rows
}

func center(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
