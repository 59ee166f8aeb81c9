package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/ui/components"
)

const notAvailable = "N/A"

// detailState is the cursor and expansion state of the detail modal.
type detailState struct {
	cursor   int
	expanded map[string]bool
}

func newDetailState() detailState {
	return detailState{expanded: map[string]bool{}}
}

// detailRow is one rendered line of a record. Nested objects collapse behind
// their parent row.
type detailRow struct {
	path   string
	depth  int
	label  string
	value  string
	image  bool
	nested bool
	open   bool
}

func detailRows(rec api.Record, expanded map[string]bool) []detailRow {
	var rows []detailRow
	if rec.Group != "" {
		rows = append(rows, detailRow{path: "\x00group", label: "Category", value: rec.Group})
	}
	return append(rows, objectRows(rec.Fields, "", 0, expanded)...)
}

func objectRows(obj *api.Object, prefix string, depth int, expanded map[string]bool) []detailRow {
	var rows []detailRow
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		row := detailRow{path: path, depth: depth, label: humanizeKey(key)}
		if v.Kind == api.ValueObject && v.Object.Len() > 0 {
			row.nested = true
			row.open = expanded[path]
			row.value = fmt.Sprintf("%d fields", v.Object.Len())
			rows = append(rows, row)
			if row.open {
				rows = append(rows, objectRows(v.Object, path, depth+1, expanded)...)
			}
			continue
		}
		row.value, row.image = displayValue(v)
		rows = append(rows, row)
	}
	return rows
}

// displayValue renders a scalar or list value. Empty values read N/A.
func displayValue(v api.Value) (string, bool) {
	switch v.Kind {
	case api.ValueNull:
		return notAvailable, false
	case api.ValueBool:
		if v.Bool {
			return "Yes", false
		}
		return "No", false
	case api.ValueText:
		text := strings.TrimSpace(v.Text)
		if text == "" {
			return notAvailable, false
		}
		return text, isImageURL(text)
	case api.ValueList:
		if len(v.List) == 0 {
			return notAvailable, false
		}
		images := true
		for _, item := range v.List {
			if item.Kind != api.ValueText || !isImageURL(item.Text) {
				images = false
				break
			}
		}
		return v.String(), images
	case api.ValueObject:
		return notAvailable, false
	}
	return v.String(), false
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func isImageURL(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range []string{".jpg", ".jpeg", ".png"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// humanizeKey turns profilePhoto into "Profile Photo" and _id into "ID".
func humanizeKey(key string) string {
	key = strings.TrimLeft(key, "_")
	if strings.EqualFold(key, "id") {
		return "ID"
	}
	var b strings.Builder
	prevLower := false
	for i, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteRune(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func (m ResourcePage) renderDetail() string {
	rec, ok := m.modal.Payload()
	if !ok {
		return m.renderList()
	}
	rows := detailRows(rec, m.detail.expanded)
	contentWidth := components.BoxContentWidth(m.width)
	if contentWidth <= 0 {
		contentWidth = 60
	}

	labelWidth := 0
	for _, r := range rows {
		if w := len(r.label) + 2*r.depth; w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > 24 {
		labelWidth = 24
	}
	valueWidth := contentWidth - labelWidth - 6
	if valueWidth < 8 {
		valueWidth = 8
	}

	lines := make([]string, 0, len(rows)+2)
	for i, r := range rows {
		marker := "  "
		if i == m.detail.cursor {
			marker = SelectedStyle.Render("> ")
		}
		label := strings.Repeat("  ", r.depth) + r.label
		label = padRight(components.ClampTextWidthEllipsis(label, labelWidth), labelWidth)

		value := r.value
		switch {
		case r.nested && r.open:
			value = "▾ " + value
		case r.nested:
			value = "▸ " + value
		case r.image:
			value = "image: " + value
		}
		value = components.ClampTextWidthEllipsis(value, valueWidth)

		valueStyle := MetaValueStyle
		if r.value == notAvailable {
			valueStyle = MutedStyle
		} else if r.image {
			valueStyle = BlueStyle
		}
		lines = append(lines, marker+MetaKeyStyle.Render(label)+"  "+valueStyle.Render(value))
	}

	if m.spec.HasApproval() {
		on, pending := m.statusOf(rec)
		lines = append(lines, "", MetaKeyStyle.Render("  Status")+"  "+components.Switch(on, pending))
	}

	title := components.SanitizeOneLine(m.displayName(rec))
	if strings.TrimSpace(title) == "" {
		title = m.spec.Singular
	}
	return components.TitledBox(m.spec.Singular+" · "+title, strings.Join(lines, "\n"), m.width)
}
