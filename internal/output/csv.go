package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shtax/salary-calculator/internal/domain"
)

// detailHeader is the column layout of the row-per-month export.
var detailHeader = []string{
	"month", "gross", "pension", "medical", "unemployment", "housing_fund",
	"employer_housing", "contribution_total", "taxable", "cumulative_taxable",
	"cumulative_tax", "tax", "net",
}

// CSVFormatter renders the detail report as a row-per-month CSV document.
// Annual totals go to a separate file when exporting to disk.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.DetailReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(detailHeader); err != nil {
		return nil, err
	}
	for _, m := range report.Months {
		if err := w.Write(detailRow(m)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func detailRow(m domain.MonthlyRecord) []string {
	return []string{
		strconv.Itoa(m.Month),
		m.Gross.String(),
		m.Pension.String(),
		m.Medical.String(),
		m.Unemployment.String(),
		m.HousingFund.String(),
		m.EmployerHousing.String(),
		m.ContributionTotal.String(),
		m.TaxableIncome.String(),
		m.CumulativeTaxable.String(),
		m.CumulativeTax.String(),
		m.Tax.String(),
		m.Net.String(),
	}
}

// WriteDetailCSV writes the two-file export into dir: <prefix>_monthly.csv
// with one row per month, and <prefix>_totals.csv with the annual totals.
// The directory is created if it does not exist.
func WriteDetailCSV(report *domain.DetailReport, dir, prefix string) (monthlyPath, totalsPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	monthlyPath = filepath.Join(dir, prefix+"_monthly.csv")
	data, err := CSVFormatter{}.Format(report)
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(monthlyPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", monthlyPath, err)
	}

	totalsPath = filepath.Join(dir, prefix+"_totals.csv")
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{
		"gross_annual", "contribution_annual", "housing_personal_annual",
		"housing_employer_annual", "tax_annual", "net_annual",
	}); err != nil {
		return "", "", err
	}
	t := report.Totals
	if err := w.Write([]string{
		t.GrossAnnual.String(),
		t.ContributionAnnual.String(),
		t.HousingPersonalAnnual.String(),
		t.HousingEmployerAnnual.String(),
		t.TaxAnnual.String(),
		t.NetAnnual.String(),
	}); err != nil {
		return "", "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(totalsPath, buf.Bytes(), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", totalsPath, err)
	}

	return monthlyPath, totalsPath, nil
}
