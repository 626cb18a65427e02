package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shtax/salary-calculator/internal/domain"
)

// ConsoleFormatter renders the detail report as a fixed-width table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.DetailReport) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "TWELVE-MONTH WITHHOLDING DETAIL (cumulative method)")
	fmt.Fprintln(buf, strings.Repeat("=", 118))
	fmt.Fprintf(buf, "%-5s %12s %10s %10s %10s %10s %12s %12s %12s %12s\n",
		"Month", "Gross", "Pension", "Medical", "Unemp.", "Housing", "Deductions", "CumTaxable", "Tax", "Net")
	fmt.Fprintln(buf, strings.Repeat("-", 118))

	for _, m := range report.Months {
		fmt.Fprintf(buf, "%-5d %12s %10s %10s %10s %10s %12s %12s %12s %12s\n",
			m.Month,
			m.Gross.StringFixed(2),
			m.Pension.StringFixed(2),
			m.Medical.StringFixed(2),
			m.Unemployment.StringFixed(2),
			m.HousingFund.StringFixed(2),
			m.ContributionTotal.StringFixed(2),
			m.CumulativeTaxable.StringFixed(2),
			m.Tax.StringFixed(2),
			m.Net.StringFixed(2))
	}

	fmt.Fprintln(buf, strings.Repeat("-", 118))
	fmt.Fprintln(buf, "ANNUAL TOTALS")
	fmt.Fprintf(buf, "  Gross income:           %s\n", FormatCurrency(report.Totals.GrossAnnual))
	fmt.Fprintf(buf, "  Employee deductions:    %s\n", FormatCurrency(report.Totals.ContributionAnnual))
	fmt.Fprintf(buf, "  Housing fund (employee): %s\n", FormatCurrency(report.Totals.HousingPersonalAnnual))
	fmt.Fprintf(buf, "  Housing fund (employer): %s\n", FormatCurrency(report.Totals.HousingEmployerAnnual))
	fmt.Fprintf(buf, "  Income tax:             %s\n", FormatCurrency(report.Totals.TaxAnnual))
	fmt.Fprintf(buf, "  Net income:             %s\n", FormatCurrency(report.Totals.NetAnnual))

	return buf.Bytes(), nil
}

// FormatMonthlyRecord renders a single standalone month for console display.
func FormatMonthlyRecord(rec domain.MonthlyRecord) string {
	buf := &strings.Builder{}
	fmt.Fprintln(buf, "MONTHLY SALARY BREAKDOWN")
	fmt.Fprintln(buf, strings.Repeat("=", 40))
	fmt.Fprintf(buf, "  Gross salary:        %s\n", FormatCurrency(rec.Gross))
	fmt.Fprintf(buf, "  Pension:             %s\n", FormatCurrency(rec.Pension))
	fmt.Fprintf(buf, "  Medical:             %s\n", FormatCurrency(rec.Medical))
	fmt.Fprintf(buf, "  Unemployment:        %s\n", FormatCurrency(rec.Unemployment))
	fmt.Fprintf(buf, "  Housing fund:        %s\n", FormatCurrency(rec.HousingFund))
	fmt.Fprintf(buf, "  Total deductions:    %s\n", FormatCurrency(rec.ContributionTotal))
	fmt.Fprintf(buf, "  Taxable income:      %s\n", FormatCurrency(rec.TaxableIncome))
	fmt.Fprintf(buf, "  Tax bracket:         %s (quick deduction %s)\n", FormatPercentage(rec.Rate), FormatCurrency(rec.QuickDeduction))
	fmt.Fprintf(buf, "  Income tax:          %s\n", FormatCurrency(rec.Tax))
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "  Net salary:          %s\n", FormatCurrency(rec.Net))
	return buf.String()
}

// FormatAnnualSummary renders the annual aggregate for console display.
func FormatAnnualSummary(s domain.AnnualSummary) string {
	buf := &strings.Builder{}
	fmt.Fprintln(buf, "ANNUAL SALARY BREAKDOWN (cumulative withholding)")
	fmt.Fprintln(buf, strings.Repeat("=", 48))
	fmt.Fprintf(buf, "  Gross annual salary:   %s\n", FormatCurrency(s.GrossAnnual))
	fmt.Fprintf(buf, "  Pension:               %s\n", FormatCurrency(s.PensionAnnual))
	fmt.Fprintf(buf, "  Medical:               %s\n", FormatCurrency(s.MedicalAnnual))
	fmt.Fprintf(buf, "  Unemployment:          %s\n", FormatCurrency(s.UnemploymentAnnual))
	fmt.Fprintf(buf, "  Housing fund:          %s\n", FormatCurrency(s.HousingFundAnnual))
	fmt.Fprintf(buf, "  Total deductions:      %s\n", FormatCurrency(s.ContributionAnnual))
	fmt.Fprintf(buf, "  Taxable income:        %s\n", FormatCurrency(s.TaxableAnnual))
	fmt.Fprintf(buf, "  Income tax:            %s\n", FormatCurrency(s.TaxAnnual))
	fmt.Fprintln(buf, strings.Repeat("-", 48))
	fmt.Fprintf(buf, "  Net annual income:     %s\n", FormatCurrency(s.NetAnnual))
	fmt.Fprintf(buf, "  Net monthly equivalent: %s\n", FormatCurrency(s.NetMonthlyEquivalent))
	return buf.String()
}
