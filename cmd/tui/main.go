package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"sisexpo/internal/tui"
	"sisexpo/internal/tui/config"
	"sisexpo/pkg/logger"
)

func main() {
	// .env is optional; SIS_API_URL can come from it
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		fmt.Println("Using default configuration...")
		cfg = config.Default()
	}

	logger.Init(logger.Config{
		Level:  "warn",
		Format: "json",
		Output: "stderr",
	})

	app := tui.NewApp(cfg)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
