package views

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sisexpo/internal/api"
	"sisexpo/internal/state"
	"sisexpo/internal/tui/components"
	"sisexpo/internal/tui/styles"
	"sisexpo/pkg/models"
	"sisexpo/pkg/utils"
)

// FeedUpdatedMsg is sent whenever a feed operation settles
type FeedUpdatedMsg struct{}

// NotificationsView shows the paginated notification feed with filters
type NotificationsView struct {
	feed     *state.NotificationFeed
	pageSize int

	cursor     int
	readFilter *bool // nil = all, true = read, false = unread

	spinner components.Spinner
	loaded  bool

	width  int
	height int
}

// NewNotificationsView creates the notifications view
func NewNotificationsView(feed *state.NotificationFeed, pageSize int) NotificationsView {
	return NotificationsView{
		feed:     feed,
		pageSize: pageSize,
		spinner:  components.NewSpinner("Chargement des notifications..."),
	}
}

// Init loads the first page
func (v NotificationsView) Init() tea.Cmd {
	return tea.Batch(v.loadFirst(), v.spinner.Tick())
}

func (v NotificationsView) loadFirst() tea.Cmd {
	feed := v.feed
	limit := v.pageSize
	read := v.readFilter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		first := 1
		feed.Load(ctx, api.ListNotificationsOptions{
			Read: read,
			Page: api.Page{Page: &first, Limit: &limit},
		})
		return FeedUpdatedMsg{}
	}
}

func (v NotificationsView) goToPage(page int) tea.Cmd {
	feed := v.feed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		feed.GoToPage(ctx, page)
		return FeedUpdatedMsg{}
	}
}

func (v NotificationsView) markRead(id string) tea.Cmd {
	feed := v.feed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		feed.MarkRead(ctx, id)
		return FeedUpdatedMsg{}
	}
}

func (v NotificationsView) markAllRead() tea.Cmd {
	feed := v.feed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		feed.MarkAllRead(ctx)
		return FeedUpdatedMsg{}
	}
}

func (v NotificationsView) deleteCurrent(id string) tea.Cmd {
	feed := v.feed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		feed.Delete(ctx, id)
		return FeedUpdatedMsg{}
	}
}

func (v NotificationsView) filterRead(read *bool) tea.Cmd {
	feed := v.feed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		feed.FilterByRead(ctx, read)
		return FeedUpdatedMsg{}
	}
}

// Update handles messages for the notifications view
func (v NotificationsView) Update(msg tea.Msg) (NotificationsView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case FeedUpdatedMsg:
		v.loaded = true
		if n := len(v.feed.Items()); v.cursor >= n && n > 0 {
			v.cursor = n - 1
		} else if n == 0 {
			v.cursor = 0
		}
		return v, nil

	case tea.KeyMsg:
		items := v.feed.Items()
		meta := v.feed.Meta()
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil
		case "down", "j":
			if v.cursor < len(items)-1 {
				v.cursor++
			}
			return v, nil
		case "right", "n":
			if meta.Page < meta.TotalPages {
				return v, v.goToPage(meta.Page + 1)
			}
			return v, nil
		case "left", "p":
			if meta.Page > 1 {
				return v, v.goToPage(meta.Page - 1)
			}
			return v, nil
		case "enter":
			if v.cursor < len(items) && !items[v.cursor].Read {
				return v, v.markRead(items[v.cursor].ID)
			}
			return v, nil
		case "a":
			return v, v.markAllRead()
		case "d":
			if v.cursor < len(items) {
				return v, v.deleteCurrent(items[v.cursor].ID)
			}
			return v, nil
		case "u":
			// Cycle all -> unread only -> read only -> all
			var next *bool
			switch {
			case v.readFilter == nil:
				f := false
				next = &f
			case !*v.readFilter:
				t := true
				next = &t
			default:
				next = nil
			}
			v.readFilter = next
			v.cursor = 0
			return v, v.filterRead(next)
		case "r":
			return v, v.loadFirst()
		}
	}

	return v, v.spinner.Update(msg)
}

func notificationBadge(typ string) string {
	switch typ {
	case models.NotificationRegistration:
		return styles.BadgeSuccessStyle.Render("INSCRIPTION")
	case models.NotificationProgram:
		return styles.BadgePrimaryStyle.Render("PROGRAMME")
	case models.NotificationMedia:
		return styles.BadgePrimaryStyle.Render("MEDIA")
	default:
		return styles.BadgeWarningStyle.Render("SYSTÈME")
	}
}

// View renders the notifications view
func (v NotificationsView) View() string {
	if !v.loaded && v.feed.Loading() {
		return v.spinner.View()
	}

	if msg, _ := v.feed.Err(); msg != "" {
		return styles.ErrorStyle.Render("Notifications indisponibles: "+msg) + "\n" +
			styles.HelpStyle.Render("r: réessayer")
	}

	items := v.feed.Items()
	meta := v.feed.Meta()
	unread := v.feed.UnreadCount()

	header := styles.TitleStyle.Render("Notifications")
	if unread > 0 {
		header += " " + styles.BadgeWarningStyle.Render(fmt.Sprintf("%d non lue(s)", unread))
	}
	filter := "toutes"
	if v.readFilter != nil {
		if *v.readFilter {
			filter = "lues"
		} else {
			filter = "non lues"
		}
	}
	header += " " + styles.HelpStyle.Render("["+filter+"]")

	sections := []string{header, ""}

	if len(items) == 0 {
		sections = append(sections, styles.InfoStyle.Render("Aucune notification"))
	}

	for i, n := range items {
		title := n.Title
		if !n.Read {
			title = "● " + title
		}
		line := fmt.Sprintf("%s %s %s",
			notificationBadge(n.Type),
			title,
			styles.ListItemDescStyle.Render(utils.TimeAgo(n.CreatedAt)))
		if i == v.cursor {
			sections = append(sections, styles.ListItemSelectedStyle.Render(line))
		} else {
			sections = append(sections, styles.ListItemStyle.Render(line))
		}
	}

	if meta.TotalPages > 1 {
		sections = append(sections, "",
			styles.HelpStyle.Render(fmt.Sprintf("page %d/%d (%d au total)", meta.Page, meta.TotalPages, meta.Total)))
	}

	help := "enter: marquer lue • a: tout marquer lu • d: supprimer • u: filtre lu/non-lu • ←/→: pages • r: rafraîchir"
	sections = append(sections, "", styles.HelpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
