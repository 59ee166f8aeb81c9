package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/ui/components"
	"github.com/kalpyotish/kalp-admin/internal/workflow"
)

var previewBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder).
	Padding(1, 2)

const (
	previewWidthPercent = 32
	previewMinWidth     = 38
	previewMaxWidth     = 56
	maxPreviewRows      = 6
)

// preferredPreviewWidth is the side panel's share of the content width.
func preferredPreviewWidth(contentWidth int) int {
	if contentWidth <= 0 {
		return previewMinWidth
	}
	return min(max(contentWidth*previewWidthPercent/100, previewMinWidth), previewMaxWidth)
}

func previewBoxContentWidth(width int) int {
	if width <= 0 {
		return 0
	}
	return max(width-previewBoxStyle.GetHorizontalFrameSize(), 10)
}

// renderPreviewBox frames content at an outer width of width cells.
func renderPreviewBox(content string, width int) string {
	if width <= 0 {
		return ""
	}
	out := previewBoxStyle.Width(width).Render(content)
	if over := lipgloss.Width(out) - width; over > 0 {
		out = previewBoxStyle.Width(max(width-over, 1)).Render(content)
	}
	return out
}

// wrapPreviewText word-wraps one sanitized line into rows of width cells.
func wrapPreviewText(text string, width int) []string {
	text = components.SanitizeOneLine(text)
	if width <= 0 || text == "" {
		return nil
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

func renderPreviewRow(label, value string, width int) string {
	label = components.SanitizeOneLine(label)
	value = components.SanitizeOneLine(value)

	value = components.ClampTextWidthEllipsis(value, max(width-lipgloss.Width(label)-2, 4))
	return MetaKeyStyle.Render(label) + MetaPunctStyle.Render(": ") + MetaValueStyle.Render(value)
}

// renderRecordPreview summarizes the selected record: its name, then up to
// maxPreviewRows scalar fields in server order.
func renderRecordPreview(rec api.Record, nameField string, width int) string {
	var lines []string
	lines = append(lines, MetaKeyStyle.Render("Selected"))
	title := rec.Text(nameField)
	if title == "" {
		title = rec.ID()
	}
	for _, part := range wrapPreviewText(title, width) {
		lines = append(lines, SelectedStyle.Render(part))
	}
	lines = append(lines, "")

	if rec.Group != "" {
		lines = append(lines, renderPreviewRow("Category", rec.Group, width))
	}
	shown := 0
	for _, key := range rec.Fields.Keys() {
		if shown == maxPreviewRows {
			break
		}
		if key == nameField || key == "_id" || key == "__v" {
			continue
		}
		v, _ := rec.Get(key)
		if v.Kind == api.ValueObject {
			continue
		}
		value, image := displayValue(v)
		if image {
			value = "image: " + value
		}
		lines = append(lines, renderPreviewRow(humanizeKey(key), value, width))
		shown++
	}
	return padPreviewLines(lines, width)
}

// renderFilePreview describes one selected upload.
func renderFilePreview(pv workflow.Preview, active bool, width int) string {
	name := components.SanitizeOneLine(pv.Name)
	var lines []string
	if active {
		lines = append(lines, SelectedStyle.Render(components.ClampTextWidthEllipsis("> "+name, width)))
	} else {
		lines = append(lines, NormalStyle.Render(components.ClampTextWidthEllipsis("  "+name, width)))
	}
	lines = append(lines, renderPreviewRow("  Type", pv.MIME, width))
	lines = append(lines, renderPreviewRow("  Size", formatFileSize(pv.Size), width))
	return padPreviewLines(lines, width)
}

func formatFileSize(size int64) string {
	switch {
	case size < 1<<10:
		return fmt.Sprintf("%d B", size)
	case size < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	}
	return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
}

// padPreviewLines squares rows off to exactly width cells.
func padPreviewLines(lines []string, width int) string {
	if width <= 0 || len(lines) == 0 {
		return ""
	}
	row := lipgloss.NewStyle().Width(width).MaxWidth(width)
	for i, line := range lines {
		lines[i] = row.Render(line)
	}
	return strings.Join(lines, "\n")
}
