package output

import (
	"github.com/shopspring/decimal"

	"github.com/shtax/salary-calculator/internal/domain"
)

// Formatter renders a twelve-month detail report in one output format.
type Formatter interface {
	Name() string
	Format(report *domain.DetailReport) ([]byte, error)
}

var formatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
	HTMLFormatter{},
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// FormatterNames lists the registered format names.
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// FormatCurrency formats a decimal as yuan
func FormatCurrency(amount decimal.Decimal) string {
	return "¥" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal ratio as a percentage
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
