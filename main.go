package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/workie-app/workie/internal/config"
	"github.com/workie-app/workie/internal/store"
	"github.com/workie-app/workie/internal/tui"
	"github.com/workie-app/workie/internal/workie"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	s := store.NewWithDefaults(db, workie.Settings{
		PayRates: workie.DefaultPayRates(),
		Currency: cfg.Currency,
	})

	app := tui.NewApp(s, cfg.WeeklyLimit)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
