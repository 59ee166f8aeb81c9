package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maxLineWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func TestFrameWidthBounds(t *testing.T) {
	assert.Equal(t, 0, frameWidth(0))
	assert.Equal(t, 30, frameWidth(30))
	assert.Equal(t, 40, frameWidth(50))
	assert.Equal(t, 70, frameWidth(100))
	assert.Equal(t, 80, frameWidth(200))
}

func TestBoxRendersAtFrameWidth(t *testing.T) {
	for _, width := range []int{20, 60, 100, 200} {
		out := TitledBox("Users", "line", width)
		assert.Equal(t, frameWidth(width), maxLineWidth(out), "width %d", width)
	}
}

func TestTitledBoxSetsTitleInTopEdge(t *testing.T) {
	out := SanitizeText(TitledBox("Poojas", "Content", 80))
	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "╭─ Poojas ─"))
	assert.True(t, strings.HasSuffix(lines[0], "╮"))
	assert.Contains(t, out, "Content")
}

func TestTitledBoxEmptyTitleFallsBack(t *testing.T) {
	out := TitledBox("", "Content", 80)
	assert.Equal(t, Box("Content", 80), out)
}

func TestTitledBoxLongTitleIsCut(t *testing.T) {
	out := TitledBox(strings.Repeat("Astrologer ", 10), "x", 40)
	assert.Equal(t, 40, maxLineWidth(out))
}

func TestErrorBoxIncludesMessage(t *testing.T) {
	out := SanitizeText(ErrorBox("Error", "Network Error: Could not connect to server.", 80))
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "Could not connect")
}

func TestEmptyStateBoxIncludesHints(t *testing.T) {
	out := SanitizeText(EmptyStateBox("Users", "No users found.", []string{"Press r to reload"}, 80))
	assert.Contains(t, out, "Users")
	assert.Contains(t, out, "No users found.")
	assert.Contains(t, out, "• Press r to reload")
}

func TestCardClampsToWidth(t *testing.T) {
	out := Card("Ganesh Puja with a very long title", "Health\nline two", 24, false)
	assert.LessOrEqual(t, maxLineWidth(out), 24)
	clean := SanitizeText(out)
	assert.Contains(t, clean, "Health")
	assert.Contains(t, clean, "…")
}

func TestCardGridWraps(t *testing.T) {
	cards := []string{Card("a", "", 20, false), Card("b", "", 20, true), Card("c", "", 20, false)}
	out := CardGrid(cards, 45)
	assert.LessOrEqual(t, maxLineWidth(out), 45)
	clean := SanitizeText(out)
	assert.Contains(t, clean, "a")
	assert.Contains(t, clean, "c")
	assert.Equal(t, "", CardGrid(nil, 45))
}

func TestSwitchStates(t *testing.T) {
	assert.Equal(t, "[x] On", SanitizeText(Switch(true, false)))
	assert.Equal(t, "[ ] Off", SanitizeText(Switch(false, false)))
	assert.Equal(t, "[x] On …", SanitizeText(Switch(true, true)))
}
