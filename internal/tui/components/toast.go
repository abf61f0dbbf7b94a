package components

import (
	"sisexpo/internal/state"
	"sisexpo/internal/tui/styles"
)

// RenderToast renders one transient feedback entry
func RenderToast(t state.Toast) string {
	if t.Level == "success" {
		return styles.SuccessStyle.Render("✓ " + t.Message)
	}
	return styles.ErrorStyle.Render("✗ " + t.Message)
}
