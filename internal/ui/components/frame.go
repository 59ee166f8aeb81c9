package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorFrame   = lipgloss.Color("#273540")
	colorTitle   = lipgloss.Color("#d4802a")
	colorActive  = lipgloss.Color("#c9a24b")
	colorLabel   = lipgloss.Color("#5b6fb0")
	colorText    = lipgloss.Color("#d7d9da")
	colorMuted   = lipgloss.Color("#9ba0bf")
	colorOn      = lipgloss.Color("#3f866b")
	colorErrEdge = lipgloss.Color("#7a2f3a")
	colorErrHead = lipgloss.Color("#e06c75")
	colorErrBody = lipgloss.Color("#d6b5b5")
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame).
			Padding(1, 2)
	activeFrameStyle = frameStyle.BorderForeground(colorActive)
	errorFrameStyle  = frameStyle.BorderForeground(colorErrEdge)

	titleStyle    = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	valueStyle    = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	onStyle       = lipgloss.NewStyle().Foreground(colorOn).Bold(true)
	errHeadStyle  = lipgloss.NewStyle().Foreground(colorErrHead).Bold(true)
	errBodyStyle  = lipgloss.NewStyle().Foreground(colorErrBody)
	frameEdgeTint = lipgloss.NewStyle().Foreground(colorFrame)
)

// frameWidth is the outer width of a page frame: 70% of the terminal,
// between 40 and 80 cells, never wider than the terminal itself.
func frameWidth(termWidth int) int {
	if termWidth <= 0 {
		return 0
	}
	w := min(max(termWidth*70/100, 40), 80)
	return min(w, termWidth)
}

// renderFrame renders content in style so that the result is exactly outer
// cells wide.
func renderFrame(style lipgloss.Style, content string, outer int) string {
	if outer <= 0 {
		return style.Render(content)
	}
	out := style.Width(outer).Render(content)
	if over := lipgloss.Width(out) - outer; over > 0 && outer-over > 0 {
		out = style.Width(outer - over).Render(content)
	}
	return out
}

// Box renders content inside a bordered frame.
func Box(content string, width int) string {
	return renderFrame(frameStyle, content, frameWidth(width))
}

// BoxContentWidth is the usable width inside a Box for a terminal of width.
func BoxContentWidth(width int) int {
	w := frameWidth(width)
	if w <= 0 {
		return 0
	}
	return max(w-frameStyle.GetHorizontalFrameSize(), 0)
}

// TitledBox is a Box with title set into its top edge.
func TitledBox(title, content string, width int) string {
	return withTitle(Box(content, width), title, titleStyle, frameEdgeTint)
}

// ErrorBox renders message in a red frame.
func ErrorBox(title, message string, width int) string {
	body := errBodyStyle.Render(message)
	if title != "" {
		body = errHeadStyle.Render(title) + "\n\n" + body
	}
	return renderFrame(errorFrameStyle, body, frameWidth(width))
}

// EmptyStateBox renders a titled box with a message and follow-up hints.
func EmptyStateBox(title, message string, hints []string, width int) string {
	lines := []string{valueStyle.Render(SanitizeOneLine(message))}
	if len(hints) > 0 {
		lines = append(lines, "")
		for _, h := range hints {
			lines = append(lines, mutedStyle.Render("• "+SanitizeOneLine(h)))
		}
	}
	return TitledBox(title, strings.Join(lines, "\n"), width)
}

// withTitle replaces the top edge of a rendered frame with
// "╭─ title ───╮". Frames too narrow for a title are returned unchanged.
func withTitle(boxed, title string, style, edge lipgloss.Style) string {
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	w := lipgloss.Width(lines[0])
	if w < 6 {
		return boxed
	}
	b := lipgloss.RoundedBorder()
	label := truncateRunes(" "+title+" ", w-4)
	fill := w - 3 - lipgloss.Width(label)
	lines[0] = edge.Render(b.TopLeft+b.Top) + style.Render(label) + edge.Render(strings.Repeat(b.Top, fill)+b.TopRight)
	return strings.Join(lines, "\n")
}

// Card renders a compact titled tile for the dashboard counters and the
// catalog grids.
func Card(title, body string, width int, active bool) string {
	style := frameStyle
	if active {
		style = activeFrameStyle
	}
	width = max(width, 12)
	inner := max(width-style.GetHorizontalFrameSize(), 1)
	lines := []string{titleStyle.Render(ClampTextWidthEllipsis(title, inner))}
	if body != "" {
		lines = append(lines, "")
		for _, l := range strings.Split(body, "\n") {
			lines = append(lines, ClampTextWidthEllipsis(l, inner))
		}
	}
	return renderFrame(style, strings.Join(lines, "\n"), width)
}

// CardGrid lays cards out left to right, wrapping at width.
func CardGrid(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}
	if width <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	var rows []string
	var row []string
	used := 0
	for _, c := range cards {
		w := lipgloss.Width(c) + 1
		if used > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, c, " ")
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Switch renders a two-state toggle. Pending switches are drawn dimmed.
func Switch(on, pending bool) string {
	label, style := "[ ] Off", mutedStyle
	if on {
		label, style = "[x] On", onStyle
	}
	if pending {
		return mutedStyle.Render(label + " …")
	}
	return style.Render(label)
}
