package main

import (
	"fmt"
	"os"

	"github.com/avelez/taskvault/cmd/tui/client"
	"github.com/avelez/taskvault/cmd/tui/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	apiClient := client.NewClient(apiURL)

	p := tea.NewProgram(
		ui.NewModel(apiClient),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
