package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/ui/components"
)

var loginValidator = validator.New()

// --- Messages ---

type loginDoneMsg struct {
	admin *api.Admin
	err   error
}

// --- Login Model ---

const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldCount
)

// LoginModel is the sign-in screen shown while no admin is stored.
type LoginModel struct {
	client     *api.Client
	email      string
	password   string
	focus      int
	submitting bool
	errText    string

	width  int
	height int
}

func NewLoginModel(client *api.Client) LoginModel {
	return LoginModel{client: client}
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.password = ""
		return m, nil
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case isDown(msg), isKey(msg, "tab"):
			m.focus = (m.focus + 1) % loginFieldCount
		case isUp(msg), isKey(msg, "shift+tab"):
			m.focus = (m.focus - 1 + loginFieldCount) % loginFieldCount
		case isEnter(msg):
			if m.focus == loginFieldEmail {
				m.focus = loginFieldPassword
				return m, nil
			}
			return m.submit()
		case isBackspace(msg):
			if m.focus == loginFieldEmail {
				m.email = dropLastRune(m.email)
			} else {
				m.password = dropLastRune(m.password)
			}
		default:
			if m.focus == loginFieldEmail {
				appendChar(&m.email, msg)
			} else {
				appendChar(&m.password, msg)
			}
		}
	}
	return m, nil
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	input := api.LoginInput{Email: strings.TrimSpace(m.email), Password: m.password}
	if err := loginValidator.Struct(input); err != nil {
		m.errText = loginValidationMessage(err)
		return m, nil
	}
	m.submitting = true
	m.errText = ""
	client := m.client
	return m, func() tea.Msg {
		admin, err := client.Login(input)
		return loginDoneMsg{admin: admin, err: err}
	}
}

func loginValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Tag() == "email" {
		return "Enter a valid email address."
	}
	return fe.Field() + " is required."
}

func (m LoginModel) View() string {
	var b strings.Builder
	writeFieldLabel(&b, "Email", m.focus == loginFieldEmail)
	renderTextField(&b, components.SanitizeOneLine(m.email), m.focus == loginFieldEmail)
	b.WriteString("\n\n")
	writeFieldLabel(&b, "Password", m.focus == loginFieldPassword)
	renderTextField(&b, strings.Repeat("•", len([]rune(m.password))), m.focus == loginFieldPassword)
	b.WriteString("\n\n")
	switch {
	case m.submitting:
		b.WriteString(WarningStyle.Render("Signing in..."))
	case m.errText != "":
		b.WriteString(components.ErrorBox("Error", m.errText, m.width))
	default:
		b.WriteString(MutedStyle.Render("enter to sign in"))
	}
	return components.Indent(components.TitledBox("Admin Login", b.String(), m.width), 1)
}

func (m LoginModel) hints() []string {
	return []string{
		components.Hint("↑/↓", "Fields"),
		components.Hint("enter", "Sign In"),
		components.Hint("ctrl+c", "Quit"),
	}
}
