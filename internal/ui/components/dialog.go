package components

import "strings"

const dialogWidth = 44

var confirmHints = Hint("y", "Confirm") + "   " + Hint("n", "Cancel")

// ConfirmDialog renders a yes/no question.
func ConfirmDialog(title, message string) string {
	body := mutedStyle.Render(SanitizeText(message)) + "\n\n" + confirmHints
	return withTitle(renderFrame(frameStyle, body, dialogWidth), title, titleStyle, frameEdgeTint)
}

// ConfirmPreviewDialog is a confirmation listing what will be affected.
func ConfirmPreviewDialog(title string, summary []TableRow, width int) string {
	sections := make([]string, 0, 2)
	if len(summary) > 0 {
		sections = append(sections, tableBody(summary, BoxContentWidth(width)))
	}
	sections = append(sections, confirmHints)
	return TitledBox(title, strings.Join(sections, "\n\n"), width)
}
