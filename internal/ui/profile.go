package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/ui/components"
)

// --- Messages ---

// logoutRequestedMsg asks the app to end the session.
type logoutRequestedMsg struct{}

// --- Profile Model ---

// ProfileModel renders the signed-in admin and offers logout.
type ProfileModel struct {
	admin      *api.Admin
	confirming bool

	width  int
	height int
}

func NewProfileModel(admin *api.Admin) ProfileModel {
	return ProfileModel{admin: admin}
}

func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.confirming {
		switch {
		case isConfirm(key):
			m.confirming = false
			return m, func() tea.Msg { return logoutRequestedMsg{} }
		case isDecline(key):
			m.confirming = false
		}
		return m, nil
	}
	if isLogout(key) && m.admin != nil {
		m.confirming = true
	}
	return m, nil
}

func (m ProfileModel) View() string {
	if m.confirming {
		return components.Indent(components.ConfirmDialog("Logout", "End this session?"), 1)
	}
	if m.admin == nil {
		return components.Indent(components.EmptyStateBox("Profile", "Not signed in.", nil, m.width), 1)
	}
	a := m.admin
	rows := []components.TableRow{
		{Label: "Name", Value: orNA(a.Name)},
		{Label: "Email", Value: orNA(a.Email)},
		{Label: "Number", Value: orNA(a.Number)},
		{Label: "Profile", Value: profileImage(a.Profile)},
	}
	if a.Role != "" {
		rows = append(rows, components.TableRow{Label: "Role", Value: a.Role})
	}
	if a.ID != "" {
		rows = append(rows, components.TableRow{Label: "ID", Value: a.ID})
	}
	return components.Indent(components.Table("Profile", rows, m.width), 1)
}

func (m ProfileModel) hints() []string {
	if m.confirming {
		return []string{components.Hint("y", "Logout"), components.Hint("n", "Cancel")}
	}
	return []string{components.Hint("o", "Logout")}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return components.SanitizeOneLine(s)
}

func profileImage(url string) string {
	if strings.TrimSpace(url) == "" {
		return notAvailable
	}
	if isImageURL(url) {
		return "image: " + components.SanitizeOneLine(url)
	}
	return components.SanitizeOneLine(url)
}
