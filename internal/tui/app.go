// Package tui is the interactive terminal front-end for the exhibition
// platform. One root model owns the API client and the per-resource feeds;
// views render from the feeds and dispatch commands against them.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sisexpo/internal/api"
	"sisexpo/internal/state"
	"sisexpo/internal/tui/components"
	"sisexpo/internal/tui/config"
	"sisexpo/internal/tui/styles"
	"sisexpo/internal/tui/views"
	"sisexpo/pkg/logger"
	"sisexpo/pkg/models"
)

// ViewType identifies the active view
type ViewType int

const (
	ViewAuth ViewType = iota
	ViewDashboard
	ViewNotifications
	ViewPrograms
	ViewMedia
)

// SessionExpiredMsg is sent when the backend rejects the session
type SessionExpiredMsg struct{}

// StreamEventMsg wraps one live notification event
type StreamEventMsg struct {
	Event models.NotificationEvent
}

// App is the root TUI model
type App struct {
	cfg    *config.Config
	client *api.Client
	keys   KeyMap

	notifier *state.MemoryNotifier
	feed     *state.NotificationFeed
	catalog  *state.ProgramCatalog
	library  *state.MediaLibrary
	stats    *state.StatsBoard
	stream   *api.NotificationStream

	authLost chan struct{}
	bgCtx    context.Context
	bgCancel context.CancelFunc

	active ViewType
	user   *models.User

	auth          views.AuthView
	dashboard     views.DashboardView
	notifications views.NotificationsView
	programs      views.ProgramsView
	media         views.MediaView

	width  int
	height int
}

// NewApp creates the root model from configuration
func NewApp(cfg *config.Config) *App {
	authLost := make(chan struct{}, 1)

	tokens := api.NewMemoryTokenStore()
	client := api.NewClient(cfg.Server.BaseURL, tokens, api.TransportOptions{
		Language: cfg.UI.Language,
		OnUnauthorized: func() {
			select {
			case authLost <- struct{}{}:
			default:
			}
		},
	})

	notifier := state.NewMemoryNotifier(5)
	feed := state.NewNotificationFeed(client.Notifications, notifier)
	catalog := state.NewProgramCatalog(client.Programs, notifier)
	library := state.NewMediaLibrary(client.Media, notifier)
	stats := state.NewStatsBoard(client.Statistics, notifier)

	bgCtx, bgCancel := context.WithCancel(context.Background())

	app := &App{
		cfg:      cfg,
		client:   client,
		keys:     DefaultKeyMap(),
		notifier: notifier,
		feed:     feed,
		catalog:  catalog,
		library:  library,
		stats:    stats,
		authLost: authLost,
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
		active:   ViewAuth,
	}

	app.auth = views.NewAuthView(client)
	app.dashboard = views.NewDashboardView(stats, feed)
	app.notifications = views.NewNotificationsView(feed, cfg.UI.PageSize)
	app.programs = views.NewProgramsView(catalog, cfg.UI.PageSize)
	app.media = views.NewMediaView(library, cfg.UI.PageSize)

	return app
}

// Init returns the initial command
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.auth.Init(), a.watchAuthLoss())
}

func (a *App) watchAuthLoss() tea.Cmd {
	ch := a.authLost
	return func() tea.Msg {
		<-ch
		return SessionExpiredMsg{}
	}
}

func (a *App) waitForStreamEvent() tea.Cmd {
	if a.stream == nil {
		return nil
	}
	events := a.stream.Events()
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return StreamEventMsg{Event: event}
	}
}

// onLogin starts the background surfaces once a session is open
func (a *App) onLogin(session models.Session) tea.Cmd {
	a.user = &session.User
	a.active = ViewDashboard

	cmds := []tea.Cmd{a.dashboard.Init(), a.notifications.Init()}

	if a.cfg.UI.RefreshRateMs > 0 {
		a.feed.StartPolling(a.bgCtx, time.Duration(a.cfg.UI.RefreshRateMs)*time.Millisecond)
	}
	if a.cfg.UI.EnableStream && a.cfg.Server.StreamURL != "" {
		a.stream = api.NewNotificationStream(a.cfg.Server.StreamURL, a.client.Transport())
		go a.stream.Run(a.bgCtx)
		cmds = append(cmds, a.waitForStreamEvent())
	}

	logger.WithFields(map[string]interface{}{
		"user": session.User.Email,
		"role": session.User.Role,
	}).Info("session opened")

	return tea.Batch(cmds...)
}

// onLogout tears the session down and returns to the auth view
func (a *App) onLogout() {
	if a.stream != nil {
		a.stream.Close()
		a.stream = nil
	}
	a.feed.StopPolling()
	a.stats.Close()
	a.feed.Reset()
	a.catalog.Reset()
	a.library.Reset()
	a.notifier.Clear()
	a.user = nil
	a.active = ViewAuth
	a.auth = views.NewAuthView(a.client)
}

// Update handles messages for the root model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every view gets the new size, active or not.
		a.auth, _ = a.auth.Update(msg)
		a.dashboard, _ = a.dashboard.Update(msg)
		a.notifications, _ = a.notifications.Update(msg)
		a.programs, _ = a.programs.Update(msg)
		a.media, _ = a.media.Update(msg)
		return a, nil

	case views.LoginSuccessMsg:
		return a, a.onLogin(msg.Session)

	case SessionExpiredMsg:
		a.onLogout()
		return a, tea.Batch(a.watchAuthLoss(), a.auth.Init())

	case StreamEventMsg:
		a.feed.ApplyEvent(a.bgCtx, msg.Event)
		next := a.waitForStreamEvent()
		var cmd tea.Cmd
		a.notifications, cmd = a.notifications.Update(views.FeedUpdatedMsg{})
		return a, tea.Batch(next, cmd)

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) && a.active != ViewAuth {
			a.shutdown()
			return a, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			a.shutdown()
			return a, tea.Quit
		}
		if a.active != ViewAuth {
			switch {
			case key.Matches(msg, a.keys.Dashboard):
				a.active = ViewDashboard
				return a, a.dashboard.Init()
			case key.Matches(msg, a.keys.Notifications):
				a.active = ViewNotifications
				return a, nil
			case key.Matches(msg, a.keys.Programs):
				a.active = ViewPrograms
				return a, a.programs.Init()
			case key.Matches(msg, a.keys.Media):
				a.active = ViewMedia
				return a, a.media.Init()
			}
			if msg.String() == "ctrl+d" {
				client := a.client
				a.onLogout()
				return a, tea.Batch(a.watchAuthLoss(), func() tea.Msg {
					ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()
					client.Auth.Logout(ctx)
					return nil
				})
			}
		}
	}

	return a.routeToActive(msg)
}

func (a *App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case ViewAuth:
		a.auth, cmd = a.auth.Update(msg)
	case ViewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case ViewNotifications:
		a.notifications, cmd = a.notifications.Update(msg)
	case ViewPrograms:
		a.programs, cmd = a.programs.Update(msg)
	case ViewMedia:
		a.media, cmd = a.media.Update(msg)
	}
	return a, cmd
}

func (a *App) shutdown() {
	if a.stream != nil {
		a.stream.Close()
	}
	a.feed.Close()
	a.stats.Close()
	a.bgCancel()
}

func (a *App) statusBar() string {
	if a.active == ViewAuth {
		return ""
	}

	tabs := []struct {
		view  ViewType
		label string
	}{
		{ViewDashboard, "1 Tableau de bord"},
		{ViewNotifications, "2 Notifications"},
		{ViewPrograms, "3 Programme"},
		{ViewMedia, "4 Médias"},
	}

	var rendered []string
	for _, t := range tabs {
		label := t.label
		if t.view == ViewNotifications {
			if unread := a.feed.UnreadCount(); unread > 0 {
				label = fmt.Sprintf("%s (%d)", label, unread)
			}
		}
		if t.view == a.active {
			rendered = append(rendered, styles.StatusBarActiveStyle.Render(label))
		} else {
			rendered = append(rendered, styles.StatusBarStyle.Render(label))
		}
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if a.user != nil {
		bar += styles.StatusBarStyle.Render("  " + a.user.FullName())
	}
	if toast, ok := a.notifier.Latest(); ok {
		bar += "  " + components.RenderToast(toast)
	}
	return bar
}

// View renders the root model
func (a *App) View() string {
	var body string
	switch a.active {
	case ViewAuth:
		return a.auth.View()
	case ViewDashboard:
		body = a.dashboard.View()
	case ViewNotifications:
		body = a.notifications.View()
	case ViewPrograms:
		body = a.programs.View()
	case ViewMedia:
		body = a.media.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.statusBar(),
		"",
		styles.AppStyle.Render(body),
	)
}
