package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/shtax/salary-calculator/internal/calculation"
	"github.com/shtax/salary-calculator/internal/output"
)

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.mode = (m.mode + 1) % modeCount
			m.result = ""
			m.err = nil
			return m, nil
		case "ctrl+r":
			m.roundInt = !m.roundInt
			m.result = ""
			m.err = nil
			return m, nil
		case "enter":
			m.runCalculation()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runCalculation parses the salary field and renders the selected report.
func (m *Model) runCalculation() {
	m.result = ""
	m.err = nil

	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		m.err = fmt.Errorf("enter a salary amount: %w", calculation.ErrInvalidInput)
		return
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		m.err = fmt.Errorf("%q is not a number: %w", raw, calculation.ErrInvalidInput)
		return
	}

	switch m.mode {
	case modeMonthly:
		rec, err := m.calc.MonthlyReport(amount, m.roundInt)
		if err != nil {
			m.err = err
			return
		}
		m.result = output.FormatMonthlyRecord(rec)
	case modeAnnual:
		summary, err := m.calc.AnnualReport(amount, m.roundInt)
		if err != nil {
			m.err = err
			return
		}
		m.result = output.FormatAnnualSummary(summary)
	case modeDetails:
		report, err := m.calc.DetailReport(amount, m.roundInt)
		if err != nil {
			m.err = err
			return
		}
		data, err := (output.ConsoleFormatter{}).Format(report)
		if err != nil {
			m.err = err
			return
		}
		m.result = string(data)
	}
}
