package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sisexpo/internal/tui/styles"
)

// Input is a labelled input field with an optional validator
type Input struct {
	textInput textinput.Model
	label     string
	error     string
	validator func(string) error
}

// NewInput creates a new input component
func NewInput(label, placeholder string) Input {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 40

	return Input{
		textInput: ti,
		label:     label,
	}
}

// NewPasswordInput creates a password input
func NewPasswordInput(label string) Input {
	ti := textinput.New()
	ti.Placeholder = "••••••••"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 128
	ti.Width = 40

	return Input{
		textInput: ti,
		label:     label,
	}
}

// WithValidator attaches a validator run by Validate
func (i Input) WithValidator(fn func(string) error) Input {
	i.validator = fn
	return i
}

// Focus sets the input as focused
func (i *Input) Focus() tea.Cmd {
	return i.textInput.Focus()
}

// Blur removes focus from input
func (i *Input) Blur() {
	i.textInput.Blur()
}

// Focused returns whether input is focused
func (i *Input) Focused() bool {
	return i.textInput.Focused()
}

// SetValue sets the input value
func (i *Input) SetValue(v string) {
	i.textInput.SetValue(v)
}

// Value returns the current input value
func (i *Input) Value() string {
	return i.textInput.Value()
}

// SetError sets an error message
func (i *Input) SetError(err string) {
	i.error = err
}

// ClearError clears the error message
func (i *Input) ClearError() {
	i.error = ""
}

// Validate runs the validator, storing the failure message
func (i *Input) Validate() bool {
	if i.validator == nil {
		return true
	}
	if err := i.validator(i.textInput.Value()); err != nil {
		i.error = err.Error()
		return false
	}
	i.error = ""
	return true
}

// Update updates the input
func (i *Input) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.textInput, cmd = i.textInput.Update(msg)
	return cmd
}

// View renders the input with label and error
func (i Input) View() string {
	labelStyle := styles.MetaKeyStyle
	if i.Focused() {
		labelStyle = styles.InputFocusedStyle
	}

	out := labelStyle.Render(i.label+":") + "\n" + i.textInput.View()
	if i.error != "" {
		out += "\n" + styles.ErrorStyle.Render(i.error)
	}
	return out
}
