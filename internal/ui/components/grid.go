package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GridColumn is one column of a Grid.
//
// A zero Width makes the column flexible: it takes whatever the fixed columns
// leave. Status columns color their "On" and "Off" labels.
type GridColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
	Status bool
}

const (
	gridLeftOffset = 2
	gridSep        = "│"
	gridRule       = "─"
	gridCross      = "┼"
)

var (
	gridLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#273540"))
	gridActiveRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d7d9da")).
				Background(lipgloss.Color("#1f2530")).
				Bold(true)
	gridActiveSepStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#273540")).
				Background(lipgloss.Color("#1f2530"))
	gridStatusOnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3f866b")).
				Bold(true)
	gridStatusOffStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9ba0bf"))
)

// Grid renders a header line, a rule, and one line per row, each exactly
// width cells wide. active is the highlighted row index, or -1.
func Grid(columns []GridColumn, rows [][]string, width, active int) string {
	if width <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return padRight("", width)
	}

	cols := layoutColumns(columns, width)
	out := make([]string, 0, len(rows)+2)
	out = append(out, gridLine(cols, headerCells(cols), width, true, false))
	out = append(out, ruleLine(cols, width))
	for i, row := range rows {
		out = append(out, gridLine(cols, row, width, false, i == active))
	}
	return strings.Join(out, "\n")
}

func headerCells(columns []GridColumn) []string {
	hdr := make([]string, len(columns))
	for i, c := range columns {
		hdr[i] = SanitizeOneLine(c.Header)
	}
	return hdr
}

// layoutColumns resolves flexible widths. Without a flexible column the last
// one absorbs the difference.
func layoutColumns(columns []GridColumn, width int) []GridColumn {
	cols := make([]GridColumn, len(columns))
	copy(cols, columns)

	avail := width - gridLeftOffset - (len(cols)-1)*lipgloss.Width(gridSep)
	fixed := 0
	flex := -1
	for i := range cols {
		if cols[i].Width <= 0 && flex < 0 {
			flex = i
			continue
		}
		if cols[i].Width < 1 {
			cols[i].Width = 1
		}
		fixed += cols[i].Width
	}
	if flex < 0 {
		flex = len(cols) - 1
		fixed -= cols[flex].Width
	}
	cols[flex].Width = avail - fixed
	if cols[flex].Width < 1 {
		cols[flex].Width = 1
	}
	return cols
}

func gridLine(cols []GridColumn, cells []string, width int, header, active bool) string {
	sepStyle := gridLineStyle
	if active {
		sepStyle = gridActiveSepStyle
	}
	sep := sepStyle.Inline(true).Render(gridSep)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridLeftOffset))
	for i, col := range cols {
		if i > 0 {
			b.WriteString(sep)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		cell := gridCell(text, col.Width, col.Align)
		switch {
		case header:
			cell = labelStyle.Inline(true).Render(cell)
		case active:
			cell = gridActiveRowStyle.Inline(true).Render(cell)
		case col.Status:
			cell = colorStatus(cell)
		}
		b.WriteString(cell)
	}
	return padRight(b.String(), width)
}

func ruleLine(cols []GridColumn, width int) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = strings.Repeat(gridRule, col.Width)
	}
	line := strings.Repeat(" ", gridLeftOffset) + strings.Join(parts, gridCross)
	return gridLineStyle.Inline(true).Render(padRight(line, width))
}

func gridCell(text string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}
	clamped := ClampTextWidthEllipsis(SanitizeOneLine(text), width)
	pad := width - lipgloss.Width(clamped)
	if pad <= 0 {
		return truncateRunes(clamped, width)
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + clamped
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + clamped + strings.Repeat(" ", pad-left)
	}
	return clamped + strings.Repeat(" ", pad)
}

// colorStatus styles a leading On/Off label and leaves the rest (padding,
// pending marker) muted.
func colorStatus(cell string) string {
	for label, style := range map[string]lipgloss.Style{"On": gridStatusOnStyle, "Off": gridStatusOffStyle} {
		rest, ok := strings.CutPrefix(cell, label)
		if ok && (rest == "" || rest[0] == ' ') {
			return style.Render(label) + gridStatusOffStyle.Render(rest)
		}
	}
	return cell
}
