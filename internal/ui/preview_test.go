package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/workflow"
)

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.5 KB", formatFileSize(1536))
	assert.Equal(t, "2.0 MB", formatFileSize(2<<20))
}

func TestPreferredPreviewWidthBounds(t *testing.T) {
	assert.Equal(t, previewMinWidth, preferredPreviewWidth(0))
	assert.Equal(t, previewMinWidth, preferredPreviewWidth(100))
	assert.Equal(t, 48, preferredPreviewWidth(150))
	assert.Equal(t, previewMaxWidth, preferredPreviewWidth(400))
}

func TestWrapPreviewTextKeepsWidth(t *testing.T) {
	lines := wrapPreviewText("Maha Mrityunjaya Jaap for health and longevity", 16)
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 16)
	}
	assert.Nil(t, wrapPreviewText("", 16))
}

func TestRenderRecordPreviewSkipsNameAndID(t *testing.T) {
	rec := api.NewRecord("_id", "a1", "name", "Meera", "email", "meera@kalp.in", "profilePhoto", "https://cdn.kalp.in/m.png")
	out := stripANSI(renderRecordPreview(rec, "name", 40))
	assert.Contains(t, out, "Meera")
	assert.Contains(t, out, "Email: meera@kalp.in")
	assert.Contains(t, out, "Profile Photo: image: ")
	assert.NotContains(t, out, "a1")
	for _, l := range strings.Split(out, "\n") {
		assert.Equal(t, 40, lipgloss.Width(l))
	}
}

func TestRenderFilePreview(t *testing.T) {
	out := stripANSI(renderFilePreview(workflow.Preview{Name: "meera.png", MIME: "image/png", Size: 2048}, true, 30))
	assert.Contains(t, out, "> meera.png")
	assert.Contains(t, out, "Type: image/png")
	assert.Contains(t, out, "Size: 2.0 KB")
}
