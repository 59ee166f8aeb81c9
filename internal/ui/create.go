package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/ui/components"
)

// formState is the cursor and input buffers of the create modal. Field
// values themselves live on the draft.
type formState struct {
	focus      int
	tagBuf     string
	pathBuf    string
	fileCursor int
	errText    string
}

// fileSlot is the focus index of the file picker, or -1 when the form
// takes no files.
func (m ResourcePage) fileSlot() int {
	if m.spec.Form.FileField == "" {
		return -1
	}
	return len(m.spec.Form.Fields)
}

func (m ResourcePage) focusCount() int {
	n := len(m.spec.Form.Fields)
	if m.spec.Form.FileField != "" {
		n++
	}
	return n
}

func (m ResourcePage) focusedField() (api.FieldSpec, bool) {
	if m.form.focus < 0 || m.form.focus >= len(m.spec.Form.Fields) {
		return api.FieldSpec{}, false
	}
	return m.spec.Form.Fields[m.form.focus], true
}

func (m ResourcePage) handleCreateKeys(msg tea.KeyMsg) (ResourcePage, tea.Cmd) {
	if m.draft == nil {
		m.modal.Close()
		return m, nil
	}
	switch {
	case isBack(msg):
		m.closeCreate()
		return m, nil
	case isSave(msg):
		m.form.errText = ""
		return m.submit()
	}
	if m.draft.Submitting() {
		return m, nil
	}

	switch {
	case isDown(msg), isKey(msg, "tab"):
		m.commitTag()
		if n := m.focusCount(); n > 0 {
			m.form.focus = (m.form.focus + 1) % n
		}
		return m, nil
	case isUp(msg), isKey(msg, "shift+tab"):
		m.commitTag()
		if n := m.focusCount(); n > 0 {
			m.form.focus = (m.form.focus - 1 + n) % n
		}
		return m, nil
	}

	if m.form.focus == m.fileSlot() {
		m.handleFileKeys(msg)
		return m, nil
	}
	field, ok := m.focusedField()
	if !ok {
		return m, nil
	}
	if field.List {
		m.handleTagKeys(field, msg)
		return m, nil
	}
	switch {
	case isBackspace(msg):
		m.draft.UpdateField(field.Name, dropLastRune(m.draft.Field(field.Name)))
	case isEnter(msg):
		if n := m.focusCount(); n > 0 {
			m.form.focus = (m.form.focus + 1) % n
		}
	default:
		value := m.draft.Field(field.Name)
		appendChar(&value, msg)
		m.draft.UpdateField(field.Name, value)
	}
	return m, nil
}

func (m *ResourcePage) handleTagKeys(field api.FieldSpec, msg tea.KeyMsg) {
	switch {
	case isEnter(msg), isKey(msg, ","):
		m.commitTag()
	case isBackspace(msg):
		if m.form.tagBuf == "" {
			m.draft.PopListItem(field.Name)
			return
		}
		m.form.tagBuf = dropLastRune(m.form.tagBuf)
	default:
		appendChar(&m.form.tagBuf, msg)
	}
}

// commitTag adds the pending tag buffer to the focused list field.
func (m *ResourcePage) commitTag() {
	field, ok := m.focusedField()
	if !ok || !field.List {
		return
	}
	if strings.TrimSpace(m.form.tagBuf) != "" {
		m.draft.AddListItem(field.Name, m.form.tagBuf)
	}
	m.form.tagBuf = ""
}

func (m *ResourcePage) handleFileKeys(msg tea.KeyMsg) {
	files := m.draft.Files()
	switch {
	case isEnter(msg):
		paths := splitPaths(m.form.pathBuf)
		if len(paths) == 0 {
			return
		}
		if err := m.draft.AddFiles(paths...); err != nil {
			m.form.errText = err.Error()
			return
		}
		m.form.errText = ""
		m.form.pathBuf = ""
		m.form.fileCursor = len(m.draft.Files()) - 1
	case isKey(msg, "left"):
		if m.form.fileCursor > 0 {
			m.form.fileCursor--
		}
	case isKey(msg, "right"):
		if m.form.fileCursor < len(files)-1 {
			m.form.fileCursor++
		}
	case isKey(msg, "ctrl+x"):
		if m.draft.RemoveFile(m.form.fileCursor) && m.form.fileCursor >= len(files)-1 && m.form.fileCursor > 0 {
			m.form.fileCursor--
		}
	case isBackspace(msg):
		m.form.pathBuf = dropLastRune(m.form.pathBuf)
	default:
		appendChar(&m.form.pathBuf, msg)
	}
}

func splitPaths(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (m ResourcePage) renderCreate() string {
	if m.draft == nil {
		return m.renderList()
	}
	var b strings.Builder
	for i, f := range m.spec.Form.Fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		focused := m.form.focus == i
		writeFieldLabel(&b, label, focused)
		if f.List {
			b.WriteString(NormalStyle.Render("  " + m.renderTags(f.Name, focused)))
		} else {
			value := components.SanitizeOneLine(m.draft.Field(f.Name))
			if value == "" && !focused && f.Placeholder != "" {
				b.WriteString(MutedStyle.Render("  " + f.Placeholder))
			} else {
				renderTextField(&b, value, focused)
			}
		}
		b.WriteString("\n\n")
	}

	if slot := m.fileSlot(); slot >= 0 {
		label := m.spec.Form.FileLabel
		if m.spec.Form.RequireFile {
			label += " *"
		}
		focused := m.form.focus == slot
		writeFieldLabel(&b, label, focused)
		hint := "path"
		if m.spec.Form.MultiFile {
			hint = "paths, comma separated"
		}
		if m.form.pathBuf == "" && !focused {
			b.WriteString(MutedStyle.Render("  " + hint))
		} else {
			renderTextField(&b, components.SanitizeOneLine(m.form.pathBuf), focused)
		}
		if pvs := m.draft.Previews(); len(pvs) > 0 {
			width := previewBoxContentWidth(preferredPreviewWidth(components.BoxContentWidth(m.width)))
			blocks := make([]string, 0, len(pvs))
			for i, pv := range pvs {
				blocks = append(blocks, renderFilePreview(pv, focused && i == m.form.fileCursor, width))
			}
			b.WriteString("\n\n")
			b.WriteString(renderPreviewBox(strings.Join(blocks, "\n\n"), width+previewBoxStyle.GetHorizontalFrameSize()))
		}
		b.WriteString("\n\n")
	}

	switch {
	case m.draft.Submitting():
		b.WriteString(WarningStyle.Render("Submitting..."))
	case m.form.errText != "":
		b.WriteString(components.ErrorBox("Error", m.form.errText, m.width))
	case m.draft.Err() != nil:
		b.WriteString(components.ErrorBox("Error", m.draft.Err().Error(), m.width))
	default:
		b.WriteString(MutedStyle.Render("ctrl+s to submit"))
	}
	return components.TitledBox("Add "+m.spec.Singular, b.String(), m.width)
}

func writeFieldLabel(b *strings.Builder, label string, focused bool) {
	if focused {
		b.WriteString(SelectedStyle.Render("> " + label + ":"))
	} else {
		b.WriteString(MutedStyle.Render("  " + label + ":"))
	}
	b.WriteString("\n")
}

func (m ResourcePage) renderTags(name string, focused bool) string {
	items := m.draft.List(name)
	parts := make([]string, 0, len(items)+1)
	for _, item := range items {
		parts = append(parts, "["+components.SanitizeOneLine(item)+"]")
	}
	if focused {
		parts = append(parts, components.SanitizeOneLine(m.form.tagBuf)+AccentStyle.Render("█"))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// appendChar adds typed or pasted runes to target.
func appendChar(target *string, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		*target += string(msg.Runes)
	case tea.KeySpace:
		*target += " "
	}
}

func renderTextField(b *strings.Builder, value string, focused bool) {
	if value == "" && !focused {
		b.WriteString(NormalStyle.Render("  -"))
		return
	}
	if focused {
		b.WriteString(NormalStyle.Render("  " + value + AccentStyle.Render("█")))
		return
	}
	b.WriteString(NormalStyle.Render("  " + value))
}

func dropLastRune(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
