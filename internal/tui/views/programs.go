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

// CatalogUpdatedMsg is sent whenever a catalog operation settles
type CatalogUpdatedMsg struct{}

// ProgramsView shows the paginated programme listing with day filtering
type ProgramsView struct {
	catalog  *state.ProgramCatalog
	pageSize int

	cursor   int
	days     []string // distinct days of the loaded page, for cycling
	dayIndex int      // -1 = no filter

	spinner components.Spinner
	loaded  bool

	width  int
	height int
}

// NewProgramsView creates the programme view
func NewProgramsView(catalog *state.ProgramCatalog, pageSize int) ProgramsView {
	return ProgramsView{
		catalog:  catalog,
		pageSize: pageSize,
		dayIndex: -1,
		spinner:  components.NewSpinner("Chargement du programme..."),
	}
}

// Init loads the first page
func (v ProgramsView) Init() tea.Cmd {
	return tea.Batch(v.loadFirst(), v.spinner.Tick())
}

func (v ProgramsView) loadFirst() tea.Cmd {
	catalog := v.catalog
	limit := v.pageSize
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		first := 1
		catalog.Load(ctx, api.ListProgramsOptions{
			Page: api.Page{Page: &first, Limit: &limit},
		})
		return CatalogUpdatedMsg{}
	}
}

func (v ProgramsView) goToPage(page int) tea.Cmd {
	catalog := v.catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		catalog.GoToPage(ctx, page)
		return CatalogUpdatedMsg{}
	}
}

func (v ProgramsView) filterDay(day *string) tea.Cmd {
	catalog := v.catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		catalog.FilterByDay(ctx, day)
		return CatalogUpdatedMsg{}
	}
}

func (v *ProgramsView) collectDays() {
	seen := map[string]bool{}
	v.days = v.days[:0]
	for _, p := range v.catalog.Items() {
		if !seen[p.Day] {
			seen[p.Day] = true
			v.days = append(v.days, p.Day)
		}
	}
}

// Update handles messages for the programme view
func (v ProgramsView) Update(msg tea.Msg) (ProgramsView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case CatalogUpdatedMsg:
		v.loaded = true
		if v.dayIndex < 0 {
			v.collectDays()
		}
		if n := len(v.catalog.Items()); v.cursor >= n && n > 0 {
			v.cursor = n - 1
		} else if n == 0 {
			v.cursor = 0
		}
		return v, nil

	case tea.KeyMsg:
		items := v.catalog.Items()
		meta := v.catalog.Meta()
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
			// Cycle through the known days, then back to no filter.
			if len(v.days) == 0 {
				return v, nil
			}
			v.dayIndex++
			v.cursor = 0
			if v.dayIndex >= len(v.days) {
				v.dayIndex = -1
				return v, v.filterDay(nil)
			}
			day := v.days[v.dayIndex]
			return v, v.filterDay(&day)
		case "r":
			return v, v.loadFirst()
		}
	}

	return v, v.spinner.Update(msg)
}

func categoryBadge(category string) string {
	switch category {
	case models.ProgramConference:
		return styles.BadgePrimaryStyle.Render("CONFÉRENCE")
	case models.ProgramWorkshop:
		return styles.BadgeSuccessStyle.Render("ATELIER")
	case models.ProgramScreening:
		return styles.BadgeWarningStyle.Render("DÉPISTAGE")
	default:
		return styles.BadgePrimaryStyle.Render("ANIMATION")
	}
}

// View renders the programme view
func (v ProgramsView) View() string {
	if !v.loaded && v.catalog.Loading() {
		return v.spinner.View()
	}

	if msg, _ := v.catalog.Err(); msg != "" {
		return styles.ErrorStyle.Render("Programme indisponible: "+msg) + "\n" +
			styles.HelpStyle.Render("r: réessayer")
	}

	items := v.catalog.Items()
	meta := v.catalog.Meta()

	header := styles.TitleStyle.Render("Programme")
	if v.dayIndex >= 0 && v.dayIndex < len(v.days) {
		header += " " + styles.HelpStyle.Render("["+v.days[v.dayIndex]+"]")
	}

	sections := []string{header, ""}

	if len(items) == 0 {
		sections = append(sections, styles.InfoStyle.Render("Aucune activité programmée"))
	}

	for i, p := range items {
		line := fmt.Sprintf("%s %s %s %s",
			categoryBadge(p.Category),
			styles.MetaValueStyle.Render(p.Day+" "+p.StartTime+"-"+p.EndTime),
			p.Title,
			styles.ListItemDescStyle.Render(p.Location))
		if i == v.cursor {
			sections = append(sections, styles.ListItemSelectedStyle.Render(line))
			if p.Speaker != "" || p.Description != "" {
				detail := p.Description
				if p.Speaker != "" {
					detail = "Intervenant: " + p.Speaker + "  " + detail
				}
				sections = append(sections, styles.ListItemDescStyle.Render("    "+styles.Truncate(detail, 100)))
			}
		} else {
			sections = append(sections, styles.ListItemStyle.Render(line))
		}
	}

	if meta.TotalPages > 1 {
		sections = append(sections, "",
			styles.HelpStyle.Render(fmt.Sprintf("page %d/%d (%d au total)", meta.Page, meta.TotalPages, meta.Total)))
	}

	help := "f: filtrer par jour • ←/→: pages • r: rafraîchir"
	sections = append(sections, "", styles.HelpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
