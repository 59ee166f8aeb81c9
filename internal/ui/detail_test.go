package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/workflow"
)

func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "ID", humanizeKey("_id"))
	assert.Equal(t, "Profile Photo", humanizeKey("profilePhoto"))
	assert.Equal(t, "Created At", humanizeKey("created_at"))
	assert.Equal(t, "Categoryname", humanizeKey("categoryname"))
	assert.Equal(t, "Is Approved", humanizeKey("isApproved"))
}

func TestDisplayValue(t *testing.T) {
	cases := []struct {
		name  string
		in    api.Value
		want  string
		image bool
	}{
		{"null", api.Value{}, notAvailable, false},
		{"empty text", api.Text("  "), notAvailable, false},
		{"empty list", api.List(), notAvailable, false},
		{"bool", api.Bool(true), "Yes", false},
		{"number", api.Number("42"), "42", false},
		{"list", api.List(api.Text("vedic"), api.Text("tarot")), "vedic, tarot", false},
		{"image", api.Text("https://cdn.example.com/a.JPG?v=2"), "https://cdn.example.com/a.JPG?v=2", true},
		{"image list", api.List(api.Text("a.png"), api.Text("b.jpeg")), "a.png, b.jpeg", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, image := displayValue(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.image, image)
		})
	}
}

func TestDetailRowsExpandNestedObjects(t *testing.T) {
	address := api.NewObject()
	address.Set("city", api.Text("Varanasi"))
	address.Set("pin", api.Number("221001"))
	rec := api.NewRecord("_id", "u1", "name", "Gita", "address", api.ObjectValue(address))
	rec.Group = "Devotees"

	rows := detailRows(rec, map[string]bool{})
	require.Len(t, rows, 4)
	assert.Equal(t, "Category", rows[0].label)
	assert.True(t, rows[3].nested)
	assert.Equal(t, "2 fields", rows[3].value)

	rows = detailRows(rec, map[string]bool{"address": true})
	require.Len(t, rows, 6)
	assert.Equal(t, "address.city", rows[4].path)
	assert.Equal(t, 1, rows[4].depth)
	assert.Equal(t, "Varanasi", rows[4].value)
}

func TestDetailExpandKey(t *testing.T) {
	address := api.NewObject()
	address.Set("city", api.Text("Ujjain"))
	rec := api.NewRecord("_id", "u1", "address", api.ObjectValue(address))

	page := NewResourcePage(api.NewClient("http://127.0.0.1:0"), api.Users, nil, nil)
	page.width = 100
	page.openDetail(rec)

	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyDown})
	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, page.detail.expanded["address"])
	assert.Contains(t, stripANSI(page.View()), "Ujjain")

	page, _ = page.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, workflow.ModalClosed, page.modal.State())
}

func TestDetailSanitizesValues(t *testing.T) {
	rec := api.NewRecord("_id", "u1", "name", "safe\u202Eevil", "bio", "line\x1b[31mred")
	page := NewResourcePage(api.NewClient("http://127.0.0.1:0"), api.Users, nil, nil)
	page.width = 100
	page.openDetail(rec)

	out := page.View()
	assert.NotContains(t, out, "\u202E")
	assert.NotContains(t, stripANSI(out), "[31m")
}

func TestIsImageURL(t *testing.T) {
	assert.True(t, isImageURL("https://x.example/p.png"))
	assert.True(t, isImageURL("photo.JPEG#frag"))
	assert.False(t, isImageURL("https://x.example/p.gif"))
	assert.False(t, isImageURL(""))
}
