package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/logging"
	"github.com/kalpyotish/kalp-admin/internal/ui/components"
	"github.com/kalpyotish/kalp-admin/internal/workflow"
)

const (
	countUsers       = "users"
	countAstrologers = "astrologers"
)

// DashboardQueries are the landing-page counters.
func DashboardQueries(client *api.Client) []workflow.CountQuery {
	return []workflow.CountQuery{
		{Key: countUsers, Label: "Total Users", Fetch: client.UserTotal},
		{Key: countAstrologers, Label: "Total Astrologers", Fetch: client.AstrologerTotal},
	}
}

// DashboardModel shows the aggregate counters. Each card settles on its
// own, so one failed count never hides the other.
type DashboardModel struct {
	agg     workflow.Aggregator
	started bool
	logger  *slog.Logger
	width   int
	height  int
}

func NewDashboardModel(client *api.Client, logger *slog.Logger) DashboardModel {
	if logger == nil {
		logger = logging.Discard()
	}
	return DashboardModel{
		agg:    workflow.NewAggregator(DashboardQueries(client)...),
		logger: logger.With("page", "dashboard"),
	}
}

// Mount fires every count query unless a previous round is still pending.
func (m DashboardModel) Mount() (DashboardModel, tea.Cmd) {
	if m.started && !m.agg.Settled() {
		return m, nil
	}
	m.started = true
	cmd := m.agg.Start()
	return m, cmd
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case workflow.CountResultMsg:
		if m.agg.Apply(msg) && msg.Err != nil {
			m.logger.Warn("count failed", "key", msg.Key, "kind", api.KindOf(msg.Err), "err", msg.Err)
		}
	case tea.KeyMsg:
		if isReload(msg) {
			return m.Mount()
		}
	}
	return m, nil
}

func (m DashboardModel) View() string {
	contentWidth := components.BoxContentWidth(m.width)
	cardWidth := 28
	slots := m.agg.Slots()
	cards := make([]string, 0, len(slots))
	for _, s := range slots {
		value := s.Display()
		switch s.Phase {
		case workflow.SlotReady:
			value = AccentStyle.Render(value)
		case workflow.SlotFailed:
			value = ErrorStyle.Render(value)
		default:
			value = MutedStyle.Render(value)
		}
		cards = append(cards, components.Card(s.Label, value, cardWidth, false))
	}
	body := components.CardGrid(cards, contentWidth)
	return components.Indent(components.TitledBox("Dashboard", body, m.width), 1)
}

func (m DashboardModel) hints() []string {
	return []string{components.Hint("r", "Refresh")}
}
