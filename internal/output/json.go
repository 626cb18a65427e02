package output

import (
	"encoding/json"

	"github.com/shtax/salary-calculator/internal/domain"
)

// JSONFormatter renders the detail report as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.DetailReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
