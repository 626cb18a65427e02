package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Shanghai Salary & Tax Calculator"))
	b.WriteString("\n")

	rounding := "2 decimals"
	if m.roundInt {
		rounding = "whole yuan"
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s %s", LabelStyle.Render("Gross salary:"), m.input.View()),
		fmt.Sprintf("%s %s", LabelStyle.Render("Mode:        "), m.mode.String()),
		fmt.Sprintf("%s %s", LabelStyle.Render("Rounding:    "), rounding),
	)
	b.WriteString(PanelStyle.Render(form))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.result != "" {
		b.WriteString(PanelStyle.Render(m.result))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("enter calculate • tab switch mode • ctrl+r toggle rounding • esc quit"))
	b.WriteString("\n")

	return b.String()
}
