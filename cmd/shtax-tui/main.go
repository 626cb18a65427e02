package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shtax/salary-calculator/internal/config"
	"github.com/shtax/salary-calculator/internal/domain"
	"github.com/shtax/salary-calculator/internal/tui"
)

func main() {
	// Optional rule-set file; built-in Shanghai rules otherwise
	rules := domain.ShanghaiRules()
	if len(os.Args) > 1 {
		loaded, err := config.NewRulesParser().LoadFromFile(os.Args[1])
		if err != nil {
			fmt.Printf("Error loading rules: %v\n", err)
			os.Exit(1)
		}
		rules = loaded
	}

	p := tea.NewProgram(tui.NewModel(rules), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
