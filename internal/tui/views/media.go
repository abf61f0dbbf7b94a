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
)

// LibraryUpdatedMsg is sent whenever a media library operation settles
type LibraryUpdatedMsg struct{}

var mediaTypes = []string{models.MediaImage, models.MediaVideo, models.MediaDocument}

// MediaView shows the paginated media listing with type filtering
type MediaView struct {
	library  *state.MediaLibrary
	pageSize int

	cursor    int
	typeIndex int // -1 = no filter

	spinner components.Spinner
	loaded  bool

	width  int
	height int
}

// NewMediaView creates the media view
func NewMediaView(library *state.MediaLibrary, pageSize int) MediaView {
	return MediaView{
		library:   library,
		pageSize:  pageSize,
		typeIndex: -1,
		spinner:   components.NewSpinner("Chargement des médias..."),
	}
}

// Init loads the first page
func (v MediaView) Init() tea.Cmd {
	return tea.Batch(v.loadFirst(), v.spinner.Tick())
}

func (v MediaView) loadFirst() tea.Cmd {
	library := v.library
	limit := v.pageSize
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		first := 1
		library.Load(ctx, api.ListMediaOptions{
			Page: api.Page{Page: &first, Limit: &limit},
		})
		return LibraryUpdatedMsg{}
	}
}

func (v MediaView) goToPage(page int) tea.Cmd {
	library := v.library
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		library.GoToPage(ctx, page)
		return LibraryUpdatedMsg{}
	}
}

func (v MediaView) filterType(typ *string) tea.Cmd {
	library := v.library
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		library.FilterByType(ctx, typ)
		return LibraryUpdatedMsg{}
	}
}

func (v MediaView) deleteCurrent(id string) tea.Cmd {
	library := v.library
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		library.Delete(ctx, id)
		return LibraryUpdatedMsg{}
	}
}

// Update handles messages for the media view
func (v MediaView) Update(msg tea.Msg) (MediaView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case LibraryUpdatedMsg:
		v.loaded = true
		if n := len(v.library.Items()); v.cursor >= n && n > 0 {
			v.cursor = n - 1
		} else if n == 0 {
			v.cursor = 0
		}
		return v, nil

	case tea.KeyMsg:
		items := v.library.Items()
		meta := v.library.Meta()
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
		case "f":
			v.typeIndex++
			v.cursor = 0
			if v.typeIndex >= len(mediaTypes) {
				v.typeIndex = -1
				return v, v.filterType(nil)
			}
			typ := mediaTypes[v.typeIndex]
			return v, v.filterType(&typ)
		case "d":
			if v.cursor < len(items) {
				return v, v.deleteCurrent(items[v.cursor].ID)
			}
			return v, nil
		case "r":
			return v, v.loadFirst()
		}
	}

	return v, v.spinner.Update(msg)
}

func mediaBadge(typ string) string {
	switch typ {
	case models.MediaImage:
		return styles.BadgeSuccessStyle.Render("IMAGE")
	case models.MediaVideo:
		return styles.BadgePrimaryStyle.Render("VIDÉO")
	default:
		return styles.BadgeWarningStyle.Render("DOCUMENT")
	}
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f Mo", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f Ko", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d o", size)
	}
}

// View renders the media view
func (v MediaView) View() string {
	if !v.loaded && v.library.Loading() {
		return v.spinner.View()
	}

	if msg, _ := v.library.Err(); msg != "" {
		return styles.ErrorStyle.Render("Médias indisponibles: "+msg) + "\n" +
			styles.HelpStyle.Render("r: réessayer")
	}

	items := v.library.Items()
	meta := v.library.Meta()

	header := styles.TitleStyle.Render("Médias")
	if v.typeIndex >= 0 {
		header += " " + styles.HelpStyle.Render("["+mediaTypes[v.typeIndex]+"]")
	}

	sections := []string{header, ""}

	if len(items) == 0 {
		sections = append(sections, styles.InfoStyle.Render("Aucun média"))
	}

	for i, m := range items {
		line := fmt.Sprintf("%s %s %s",
			mediaBadge(m.Type),
			styles.Truncate(m.Title, 50),
			styles.ListItemDescStyle.Render(formatSize(m.Size)))
		if i == v.cursor {
			sections = append(sections, styles.ListItemSelectedStyle.Render(line))
			sections = append(sections, styles.ListItemDescStyle.Render("    "+m.URL))
		} else {
			sections = append(sections, styles.ListItemStyle.Render(line))
		}
	}

	if meta.TotalPages > 1 {
		sections = append(sections, "",
			styles.HelpStyle.Render(fmt.Sprintf("page %d/%d (%d au total)", meta.Page, meta.TotalPages, meta.Total)))
	}

	help := "f: filtrer par type • d: supprimer • ←/→: pages • r: rafraîchir"
	sections = append(sections, "", styles.HelpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
