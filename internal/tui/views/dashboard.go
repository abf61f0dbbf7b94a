package views

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sisexpo/internal/state"
	"sisexpo/internal/tui/components"
	"sisexpo/internal/tui/styles"
)

// StatsLoadedMsg is sent when the statistics snapshots settle
type StatsLoadedMsg struct{}

// DashboardView shows the global statistics and the unread aggregate
type DashboardView struct {
	stats *state.StatsBoard
	feed  *state.NotificationFeed

	spinner components.Spinner
	loaded  bool

	width  int
	height int
}

// NewDashboardView creates the dashboard view
func NewDashboardView(stats *state.StatsBoard, feed *state.NotificationFeed) DashboardView {
	return DashboardView{
		stats:   stats,
		feed:    feed,
		spinner: components.NewSpinner("Chargement des statistiques..."),
	}
}

// Init loads both snapshots
func (v DashboardView) Init() tea.Cmd {
	return tea.Batch(v.load(), v.spinner.Tick())
}

func (v DashboardView) load() tea.Cmd {
	stats := v.stats
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		stats.Load(ctx, nil)
		return StatsLoadedMsg{}
	}
}

// Update handles messages for the dashboard view
func (v DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case StatsLoadedMsg:
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loaded = false
			return v, v.load()
		}
	}

	return v, v.spinner.Update(msg)
}

func statCard(label string, value int, style lipgloss.Style) string {
	return styles.CardStyle.Render(
		style.Render(fmt.Sprintf("%d", value)) + "\n" + styles.MetaKeyStyle.Render(label),
	)
}

// View renders the dashboard
func (v DashboardView) View() string {
	if !v.loaded && v.stats.Loading() {
		return v.spinner.View()
	}

	if msg, _ := v.stats.Err(); msg != "" {
		return styles.ErrorStyle.Render("Statistiques indisponibles: "+msg) + "\n" +
			styles.HelpStyle.Render("r: réessayer")
	}

	g := v.stats.Global()
	if g == nil {
		return v.spinner.View()
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Inscriptions", g.Registrations, styles.SuccessStyle),
		statCard("Exposants", g.Exhibitors, styles.InfoStyle),
		statCard("Bénévoles", g.Volunteers, styles.InfoStyle),
		statCard("Partenaires", g.Partners, styles.InfoStyle),
		statCard("Visiteurs", g.Visitors, styles.SuccessStyle),
	)

	sections := []string{
		styles.TitleStyle.Render("Tableau de bord"),
		"",
		cards,
	}

	if r := v.stats.Registrations(); r != nil && len(r.ByDay) > 0 {
		rows := []string{styles.SubtitleStyle.Render("Inscriptions par jour")}
		for _, d := range r.ByDay {
			bar := ""
			for i := 0; i < d.Count && i < 40; i++ {
				bar += "█"
			}
			rows = append(rows, fmt.Sprintf("%s %s %d",
				styles.MetaKeyStyle.Render(d.Date),
				styles.SuccessStyle.Render(bar),
				d.Count))
		}
		sections = append(sections, "", lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	unread := v.feed.UnreadCount()
	badge := styles.BadgeSuccessStyle.Render("aucune notification non lue")
	if unread > 0 {
		badge = styles.BadgeWarningStyle.Render(fmt.Sprintf("%d notification(s) non lue(s)", unread))
	}
	sections = append(sections, "", badge)
	sections = append(sections, "", styles.HelpStyle.Render("r: rafraîchir • 2: notifications • 3: programme • 4: médias"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
