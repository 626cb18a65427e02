package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/shtax/salary-calculator/internal/calculation"
	"github.com/shtax/salary-calculator/internal/domain"
)

// reportMode selects which report the interactive calculator runs.
type reportMode int

const (
	modeMonthly reportMode = iota
	modeAnnual
	modeDetails
	modeCount
)

func (m reportMode) String() string {
	switch m {
	case modeMonthly:
		return "monthly"
	case modeAnnual:
		return "annual"
	case modeDetails:
		return "12-month detail"
	default:
		return "unknown"
	}
}

// Model holds the interactive calculator state: one salary input, a report
// mode, a rounding toggle and the last rendered result.
type Model struct {
	input    textinput.Model
	mode     reportMode
	roundInt bool

	calc *calculation.ReportCalculator

	result string
	err    error

	width  int
	height int
}

// NewModel creates the application model over the given rule set.
func NewModel(rules *domain.RuleSet) Model {
	ti := textinput.New()
	ti.Placeholder = "12000"
	ti.Prompt = "¥ "
	ti.CharLimit = 16
	ti.Width = 20
	ti.Focus()

	return Model{
		input: ti,
		mode:  modeMonthly,
		calc:  calculation.NewReportCalculatorWithConfig(rules),
	}
}
