package views

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sisexpo/internal/api"
	"sisexpo/internal/tui/components"
	"sisexpo/internal/tui/styles"
	"sisexpo/pkg/models"
	"sisexpo/pkg/utils"
)

// AuthMode selects which form the auth view shows
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
	ModeForgot
)

// LoginSuccessMsg is sent when login completes
type LoginSuccessMsg struct {
	Session models.Session
}

// AuthErrorMsg is sent when an auth call fails
type AuthErrorMsg struct {
	Error   string
	Code    string
	Details []models.ValidationDetail
}

// AuthInfoMsg carries a non-session success message (register, forgot)
type AuthInfoMsg struct {
	Message string
}

// AuthView handles login, registration and password reset requests
type AuthView struct {
	client *api.Client
	mode   AuthMode

	inputs  []components.Input
	focused int

	spinner components.Spinner
	loading bool
	err     string
	info    string

	width  int
	height int
}

// NewAuthView creates the auth view in login mode
func NewAuthView(client *api.Client) AuthView {
	v := AuthView{
		client:  client,
		mode:    ModeLogin,
		spinner: components.NewSpinner("Connexion..."),
	}
	v.buildInputs()
	return v
}

func (v *AuthView) buildInputs() {
	switch v.mode {
	case ModeLogin:
		email := components.NewInput("Email", "vous@example.com").WithValidator(utils.ValidateEmail)
		password := components.NewPasswordInput("Mot de passe")
		v.inputs = []components.Input{email, password}
	case ModeRegister:
		email := components.NewInput("Email", "vous@example.com").WithValidator(utils.ValidateEmail)
		password := components.NewPasswordInput("Mot de passe").WithValidator(utils.ValidatePassword)
		firstName := components.NewInput("Prénom", "Marie")
		lastName := components.NewInput("Nom", "Dupont")
		org := components.NewInput("Organisation", "(optionnel)")
		v.inputs = []components.Input{email, password, firstName, lastName, org}
	case ModeForgot:
		email := components.NewInput("Email", "vous@example.com").WithValidator(utils.ValidateEmail)
		v.inputs = []components.Input{email}
	}
	v.focused = 0
	v.inputs[0].Focus()
}

// Init returns the initial command
func (v AuthView) Init() tea.Cmd {
	return nil
}

func (v *AuthView) switchMode(mode AuthMode) {
	v.mode = mode
	v.err = ""
	v.info = ""
	v.buildInputs()
}

func (v *AuthView) focusNext() tea.Cmd {
	v.inputs[v.focused].Blur()
	v.focused = (v.focused + 1) % len(v.inputs)
	return v.inputs[v.focused].Focus()
}

func (v *AuthView) focusPrev() tea.Cmd {
	v.inputs[v.focused].Blur()
	v.focused = (v.focused - 1 + len(v.inputs)) % len(v.inputs)
	return v.inputs[v.focused].Focus()
}

func (v *AuthView) submit() tea.Cmd {
	for i := range v.inputs {
		if !v.inputs[i].Validate() {
			return nil
		}
	}

	v.loading = true
	v.err = ""
	v.info = ""

	switch v.mode {
	case ModeLogin:
		email := v.inputs[0].Value()
		password := v.inputs[1].Value()
		client := v.client
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			res := client.Auth.Login(ctx, email, password)
			if !res.Success {
				return AuthErrorMsg{Error: res.Error, Code: res.Code, Details: res.Details}
			}
			return LoginSuccessMsg{Session: *res.Data}
		}
	case ModeRegister:
		req := api.RegisterRequest{
			Email:        v.inputs[0].Value(),
			Password:     v.inputs[1].Value(),
			FirstName:    v.inputs[2].Value(),
			LastName:     v.inputs[3].Value(),
			Organization: v.inputs[4].Value(),
			Role:         models.RoleVisitor,
		}
		client := v.client
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			res := client.Auth.Register(ctx, req)
			if !res.Success {
				return AuthErrorMsg{Error: res.Error, Code: res.Code, Details: res.Details}
			}
			msg := res.Message
			if msg == "" {
				msg = "Compte créé, vérifiez votre email"
			}
			return AuthInfoMsg{Message: msg}
		}
	case ModeForgot:
		email := v.inputs[0].Value()
		client := v.client
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			res := client.Auth.ForgotPassword(ctx, email)
			if !res.Success {
				return AuthErrorMsg{Error: res.Error, Code: res.Code, Details: res.Details}
			}
			msg := res.Message
			if msg == "" {
				msg = "Email de réinitialisation envoyé"
			}
			return AuthInfoMsg{Message: msg}
		}
	}
	return nil
}

// Update handles messages for the auth view
func (v AuthView) Update(msg tea.Msg) (AuthView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case AuthErrorMsg:
		v.loading = false
		v.err = msg.Error
		// Attach field messages to the matching inputs so the user can fix
		// the whole form from one submission.
		if msg.Code == models.ErrCodeValidation {
			for _, d := range msg.Details {
				for i := range v.inputs {
					if matchesField(d.Field, i, v.mode) {
						v.inputs[i].SetError(d.Message)
					}
				}
			}
		}
		return v, nil

	case AuthInfoMsg:
		v.loading = false
		v.info = msg.Message
		if v.mode != ModeLogin {
			v.switchMode(ModeLogin)
			v.info = msg.Message
		}
		return v, nil

	case tea.KeyMsg:
		if v.loading {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			return v, v.focusNext()
		case "shift+tab", "up":
			return v, v.focusPrev()
		case "enter":
			return v, v.submit()
		case "ctrl+r":
			if v.mode == ModeLogin {
				v.switchMode(ModeRegister)
			} else {
				v.switchMode(ModeLogin)
			}
			return v, v.inputs[0].Focus()
		case "ctrl+f":
			v.switchMode(ModeForgot)
			return v, v.inputs[0].Focus()
		}
	}

	cmd := v.inputs[v.focused].Update(msg)
	if v.loading {
		return v, tea.Batch(cmd, v.spinner.Update(msg))
	}
	return v, cmd
}

func matchesField(field string, idx int, mode AuthMode) bool {
	switch field {
	case "email":
		return idx == 0
	case "password":
		return idx == 1 && mode != ModeForgot
	case "prenom":
		return mode == ModeRegister && idx == 2
	case "nom":
		return mode == ModeRegister && idx == 3
	case "organisation":
		return mode == ModeRegister && idx == 4
	}
	return false
}

// View renders the auth view
func (v AuthView) View() string {
	title := "S.I.S. — Connexion"
	switch v.mode {
	case ModeRegister:
		title = "S.I.S. — Inscription"
	case ModeForgot:
		title = "S.I.S. — Mot de passe oublié"
	}

	sections := []string{styles.TitleStyle.Render(title), ""}
	for i := range v.inputs {
		sections = append(sections, v.inputs[i].View(), "")
	}

	if v.loading {
		sections = append(sections, v.spinner.View())
	}
	if v.err != "" {
		sections = append(sections, styles.ErrorStyle.Render(v.err))
	}
	if v.info != "" {
		sections = append(sections, styles.SuccessStyle.Render(v.info))
	}

	help := "enter: valider • tab: champ suivant • ctrl+r: connexion/inscription • ctrl+f: mot de passe oublié • ctrl+c: quitter"
	sections = append(sections, "", styles.HelpStyle.Render(help))

	form := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	if v.width > 0 && v.height > 0 {
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
