package ui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/config"
	"github.com/kalpyotish/kalp-admin/internal/logging"
	"github.com/kalpyotish/kalp-admin/internal/session"
	"github.com/kalpyotish/kalp-admin/internal/ui/components"
	"github.com/kalpyotish/kalp-admin/internal/workflow"
)

// --- Tab Constants ---

const (
	tabDashboard = 0
	tabProfile   = 6
	tabCount     = 7
)

var tabNames = []string{"Dashboard", "Users", "Astrologers", "Products", "Poojas", "Banners", "Profile"}

// pageKinds maps resource tabs 1..5 to their families.
var pageKinds = api.Kinds()

const appToastOwner = "app"

// --- App Model ---

// App is the root TUI model. It shows the login screen until a session
// exists, then routes between the dashboard, resource pages, and profile.
type App struct {
	client   *api.Client
	config   *config.Config
	sess     session.Accessor
	logger   *slog.Logger
	previews *workflow.Previews

	tab         int
	tabNav      bool
	width       int
	height      int
	helpOpen    bool
	quitConfirm bool
	toast       workflow.Toast

	signedIn  bool
	login     LoginModel
	dashboard DashboardModel
	pages     []ResourcePage
	profile   ProfileModel
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config, sess session.Accessor, logger *slog.Logger) App {
	if logger == nil {
		logger = logging.Discard()
	}
	a := App{
		client:   client,
		config:   cfg,
		sess:     sess,
		logger:   logger,
		previews: workflow.NewPreviews(),
		tab:      tabDashboard,
		tabNav:   true,
		toast:    workflow.NewToast(appToastOwner),
		login:    NewLoginModel(client),
	}
	a.buildPages()
	if admin, ok := sess.Current(); ok {
		a.signedIn = true
		a.profile = NewProfileModel(admin)
		client.SetToken(admin.Token)
	}
	return a
}

func (a *App) buildPages() {
	a.dashboard = NewDashboardModel(a.client, a.logger)
	a.pages = make([]ResourcePage, len(pageKinds))
	for i, kind := range pageKinds {
		a.pages[i] = NewResourcePage(a.client, kind, a.previews, a.logger)
	}
	a.resize()
}

func (a App) Init() tea.Cmd {
	if !a.signedIn {
		return nil
	}
	return a.mountTab(a.tab)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case loginDoneMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if msg.err != nil {
			a.logger.Warn("login failed", "kind", api.KindOf(msg.err), "err", msg.err)
			return a, cmd
		}
		return a.completeLogin(msg.admin)

	case logoutRequestedMsg:
		return a.logout()

	case workflow.ToastExpiredMsg:
		if msg.Owner == appToastOwner {
			a.toast.Expire(msg)
			return a, nil
		}
		for i := range a.pages {
			if string(a.pages[i].spec.Kind) == msg.Owner {
				a.pages[i], _ = a.pages[i].Update(msg)
			}
		}
		return a, nil

	case workflow.CountResultMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd

	case pageMsg:
		// Results land on their page even after the user has moved on.
		for i := range a.pages {
			if a.pages[i].spec.Kind == msg.pageKind() {
				var cmd tea.Cmd
				a.pages[i], cmd = a.pages[i].Update(msg)
				return a, cmd
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKeys(msg)
	}
	return a, nil
}

func (a App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.quitConfirm {
		switch {
		case isConfirm(msg):
			a.shutdown()
			return a, tea.Quit
		case isDecline(msg):
			a.quitConfirm = false
		}
		return a, nil
	}
	if a.helpOpen {
		if isBack(msg) || isKey(msg, "?") {
			a.helpOpen = false
		}
		return a, nil
	}
	if isKey(msg, "ctrl+c") {
		return a.requestQuit()
	}
	if !a.signedIn {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	if !a.capturesKeys() {
		msg = a.translateVimKeys(msg)
		if isKey(msg, "?") {
			a.helpOpen = true
			return a, nil
		}
		if isQuit(msg) {
			return a.requestQuit()
		}
		if idx, ok := tabIndexForKey(msg.String()); ok {
			return a.switchTab(idx)
		}
		if a.tabNav {
			switch {
			case isKey(msg, "left"):
				return a.switchTab((a.tab - 1 + tabCount) % tabCount)
			case isKey(msg, "right"):
				return a.switchTab((a.tab + 1) % tabCount)
			case isDown(msg):
				a.tabNav = false
				return a, nil
			}
			a.tabNav = false
		} else if isUp(msg) && a.canExitToTabNav() {
			a.tabNav = true
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case a.tab == tabDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case a.tab == tabProfile:
		a.profile, cmd = a.profile.Update(msg)
	default:
		i := a.tab - 1
		a.pages[i], cmd = a.pages[i].Update(msg)
	}
	return a, cmd
}

func (a App) requestQuit() (tea.Model, tea.Cmd) {
	if a.hasUnsaved() {
		a.quitConfirm = true
		return a, nil
	}
	a.shutdown()
	return a, tea.Quit
}

// shutdown stops timers and releases every preview handle.
func (a *App) shutdown() {
	a.toast.Stop()
	for i := range a.pages {
		a.pages[i] = a.pages[i].Dispose()
	}
}

func (a App) completeLogin(admin *api.Admin) (tea.Model, tea.Cmd) {
	if err := a.sess.Login(admin); err != nil {
		a.logger.Error("save session", "err", err)
		a.login.errText = fmt.Sprintf("save session: %v", err)
		return a, nil
	}
	a.client.SetToken(admin.Token)
	a.signedIn = true
	a.profile = NewProfileModel(admin)
	a.profile.width, a.profile.height = a.width, a.height
	a.tab = tabDashboard
	a.tabNav = true
	a.logger.Info("admin signed in", "email", admin.Email)
	toastCmd := a.toast.Show("Login successful 🎉", workflow.ToastSuccess)
	mountCmd := a.mountTab(tabDashboard)
	return a, tea.Batch(toastCmd, mountCmd)
}

func (a App) logout() (tea.Model, tea.Cmd) {
	if err := a.sess.Logout(); err != nil {
		a.logger.Error("clear session", "err", err)
		cmd := a.toast.Show(fmt.Sprintf("Logout failed: %v", err), workflow.ToastError)
		return a, cmd
	}
	a.shutdown()
	a.client.SetToken("")
	a.signedIn = false
	a.login = NewLoginModel(a.client)
	a.profile = NewProfileModel(nil)
	a.tab = tabDashboard
	a.tabNav = true
	a.toast = workflow.NewToast(appToastOwner)
	a.buildPages()
	a.logger.Info("admin signed out")
	cmd := a.toast.Show("Logged out.", workflow.ToastSuccess)
	return a, cmd
}

func (a *App) resize() {
	a.login.width, a.login.height = a.width, a.height
	a.dashboard.width, a.dashboard.height = a.width, a.height
	a.profile.width, a.profile.height = a.width, a.height
	for i := range a.pages {
		a.pages[i].width, a.pages[i].height = a.width, a.height
	}
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	if !a.signedIn {
		content := centerBlockUniform(a.login.View(), a.width)
		if a.quitConfirm {
			content = centerBlockUniform(a.renderQuitConfirm(), a.width)
		}
		hints := components.StatusBar(a.statusContext(), a.login.hints(), a.width)
		return fmt.Sprintf("%s\n\n%s\n\n\n%s%s", banner, content, hints, a.renderFeedback())
	}

	tabs := centerBlockUniform(a.renderTabs(), a.width)
	var content string
	switch {
	case a.quitConfirm:
		content = a.renderQuitConfirm()
	case a.helpOpen:
		content = a.renderHelp()
	case a.tab == tabDashboard:
		content = a.dashboard.View()
	case a.tab == tabProfile:
		content = a.profile.View()
	default:
		content = a.pages[a.tab-1].View()
	}
	content = centerBlockUniform(content, a.width)
	hints := components.StatusBar(a.statusContext(), a.statusHints(), a.width)
	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, content, hints, a.renderFeedback())
}

func (a App) renderFeedback() string {
	if !a.toast.Visible() {
		return ""
	}
	return "\n\n" + centerBlockUniform(renderToastBox(a.toast, a.width), a.width)
}

// switchTab unmounts the current page and mounts the next one.
func (a App) switchTab(newTab int) (App, tea.Cmd) {
	oldTab := a.tab
	if oldTab == newTab {
		return a, nil
	}
	if oldTab > tabDashboard && oldTab < tabProfile {
		a.pages[oldTab-1] = a.pages[oldTab-1].Unmount()
	}
	a.tab = newTab
	var cmd tea.Cmd
	switch {
	case newTab == tabDashboard:
		a.dashboard, cmd = a.dashboard.Mount()
	case newTab == tabProfile:
		if admin, ok := a.sess.Current(); ok {
			a.profile.admin = admin
		}
	default:
		a.pages[newTab-1], cmd = a.pages[newTab-1].Mount()
	}
	return a, cmd
}

// mountTab starts the fetches of tab without leaving it.
func (a *App) mountTab(tab int) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case tab == tabDashboard:
		a.dashboard, cmd = a.dashboard.Mount()
	case tab > tabDashboard && tab < tabProfile:
		a.pages[tab-1], cmd = a.pages[tab-1].Mount()
	}
	return cmd
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(name))
		} else {
			segments = append(segments, TabInactiveStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

// statusContext names the API host and, once signed in, the admin.
func (a App) statusContext() string {
	host := strings.TrimPrefix(strings.TrimPrefix(a.client.BaseURL(), "https://"), "http://")
	if admin, ok := a.sess.Current(); ok && a.signedIn {
		who := admin.Email
		if who == "" {
			who = admin.Name
		}
		return who + " · " + host
	}
	return host
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	if a.helpOpen {
		return []string{components.Hint("esc", "Back")}
	}
	return a.statusHintsForTab()
}

func (a App) statusHintsForTab() []string {
	base := []string{
		components.Hint("1-7", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}
	switch {
	case a.tab == tabDashboard:
		return append(base, a.dashboard.hints()...)
	case a.tab == tabProfile:
		return append(base, a.profile.hints()...)
	}
	page := a.pages[a.tab-1]
	if page.capturesKeys() {
		return page.hints()
	}
	return append(base, page.hints()...)
}

func (a App) renderHelp() string {
	hints := a.statusHintsForTab()
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "You have unsaved changes. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

// renderToastBox draws a toast from any owner the same way.
func renderToastBox(t workflow.Toast, width int) string {
	text := components.SanitizeOneLine(t.Message())
	if t.IsError() {
		return components.ErrorBox("Error", text, width)
	}
	return components.TitledBox("Success", text, width)
}

func (a App) capturesKeys() bool {
	switch {
	case a.tab == tabProfile:
		return a.profile.confirming
	case a.tab > tabDashboard && a.tab < tabProfile:
		return a.pages[a.tab-1].capturesKeys()
	}
	return false
}

func (a App) hasUnsaved() bool {
	for _, p := range a.pages {
		if p.hasUnsaved() {
			return true
		}
	}
	return false
}

// translateVimKeys maps j/k to down/up when the config asks for it.
func (a App) translateVimKeys(msg tea.KeyMsg) tea.KeyMsg {
	if a.config == nil || !a.config.VimKeys {
		return msg
	}
	switch msg.String() {
	case "j":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "k":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return msg
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func (a App) canExitToTabNav() bool {
	switch {
	case a.tab == tabDashboard:
		return true
	case a.tab == tabProfile:
		return !a.profile.confirming
	}
	p := a.pages[a.tab-1]
	if p.capturesKeys() {
		return false
	}
	return p.cursor.Selected() == 0
}

func tabIndexForKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0] - '1')
	if idx >= tabCount {
		return 0, false
	}
	return idx, true
}
