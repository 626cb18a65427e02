package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shtax/salary-calculator/internal/domain"
)

// MonthsPerYear is the number of synthetic months in annual and detail runs.
const MonthsPerYear = 12

// ReportCalculator orchestrates the contribution calculator and the tax
// engine across one month or twelve months. It is a pure layer: no I/O, no
// state shared between calls.
type ReportCalculator struct {
	Rules         *domain.RuleSet
	Contributions *ContributionCalculator
	Taxes         *TaxEngine
}

// NewReportCalculator creates a report calculator with the built-in Shanghai
// rules.
func NewReportCalculator() *ReportCalculator {
	return NewReportCalculatorWithConfig(domain.ShanghaiRules())
}

// NewReportCalculatorWithConfig creates a report calculator with a
// configurable rule set.
func NewReportCalculatorWithConfig(rules *domain.RuleSet) *ReportCalculator {
	return &ReportCalculator{
		Rules:         rules,
		Contributions: NewContributionCalculatorWithConfig(rules.Contributions),
		Taxes:         NewTaxEngineWithConfig(rules.TaxBrackets),
	}
}

// roundMonetary normalizes a monetary amount for output: two decimal places
// canonically, then nearest whole yuan (half up) when toInt is set. Rounding
// happens only here, after all calculation, so it never compounds across
// months.
func roundMonetary(d decimal.Decimal, toInt bool) decimal.Decimal {
	d = d.Round(2)
	if toInt {
		return d.Round(0)
	}
	return d
}

// MonthlyReport computes a single standalone month.
func (rc *ReportCalculator) MonthlyReport(gross decimal.Decimal, roundToInt bool) (domain.MonthlyRecord, error) {
	contrib, err := rc.Contributions.Calculate(gross)
	if err != nil {
		return domain.MonthlyRecord{}, err
	}

	taxable := gross.Sub(contrib.Total).Sub(rc.Rules.MonthlyAllowance)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	taxRes, err := rc.Taxes.MonthlyTax(taxable)
	if err != nil {
		return domain.MonthlyRecord{}, err
	}

	rec := domain.MonthlyRecord{
		Month:             1,
		Gross:             gross,
		Pension:           contrib.Pension,
		Medical:           contrib.Medical,
		Unemployment:      contrib.Unemployment,
		HousingFund:       contrib.HousingFund,
		EmployerHousing:   contrib.EmployerHousingFund,
		ContributionTotal: contrib.Total,
		TaxableIncome:     taxable,
		Rate:              taxRes.Rate,
		QuickDeduction:    taxRes.QuickDeduction,
		Tax:               taxRes.Tax,
		Net:               gross.Sub(contrib.Total).Sub(taxRes.Tax),
	}
	roundRecord(&rec, roundToInt)
	return rec, nil
}

// AnnualReport divides an annual salary into twelve equal synthetic months,
// runs cumulative withholding across them, and reports the final totals.
func (rc *ReportCalculator) AnnualReport(grossAnnual decimal.Decimal, roundToInt bool) (domain.AnnualSummary, error) {
	if grossAnnual.LessThan(decimal.Zero) {
		return domain.AnnualSummary{}, fmt.Errorf("gross annual salary cannot be negative, got %s: %w", grossAnnual, ErrInvalidInput)
	}

	monthly := grossAnnual.Div(decimal.NewFromInt(MonthsPerYear))
	contrib, err := rc.Contributions.Calculate(monthly)
	if err != nil {
		return domain.AnnualSummary{}, err
	}

	months := decimal.NewFromInt(MonthsPerYear)
	monthTaxable := monthly.Sub(contrib.Total).Sub(rc.Rules.MonthlyAllowance)

	state := &CumulativeState{}
	for m := 0; m < MonthsPerYear; m++ {
		if _, err := rc.Taxes.CumulativeTax(state, monthTaxable); err != nil {
			return domain.AnnualSummary{}, err
		}
	}

	taxableAnnual := state.TaxableIncome
	if taxableAnnual.LessThan(decimal.Zero) {
		taxableAnnual = decimal.Zero
	}

	contribAnnual := contrib.Total.Mul(months)
	netAnnual := grossAnnual.Sub(contribAnnual).Sub(state.TaxWithheld)

	summary := domain.AnnualSummary{
		GrossAnnual:          grossAnnual,
		PensionAnnual:        contrib.Pension.Mul(months),
		MedicalAnnual:        contrib.Medical.Mul(months),
		UnemploymentAnnual:   contrib.Unemployment.Mul(months),
		HousingFundAnnual:    contrib.HousingFund.Mul(months),
		ContributionAnnual:   contribAnnual,
		TaxableAnnual:        taxableAnnual,
		TaxAnnual:            state.TaxWithheld,
		NetAnnual:            netAnnual,
		NetMonthlyEquivalent: netAnnual.Div(months),
	}
	roundSummary(&summary, roundToInt)
	return summary, nil
}

// DetailReport runs cumulative withholding for twelve identical-salary months
// and returns one record per month with running cumulative figures.
func (rc *ReportCalculator) DetailReport(gross decimal.Decimal, roundToInt bool) (*domain.DetailReport, error) {
	schedule := make([]decimal.Decimal, MonthsPerYear)
	for i := range schedule {
		schedule[i] = gross
	}
	return rc.DetailSchedule(schedule, roundToInt)
}

// DetailSchedule runs cumulative withholding across a per-month salary
// schedule. Schedules shorter than twelve months are padded with zero-income
// months; longer schedules are truncated.
func (rc *ReportCalculator) DetailSchedule(monthlySalaries []decimal.Decimal, roundToInt bool) (*domain.DetailReport, error) {
	schedule := make([]decimal.Decimal, MonthsPerYear)
	for i := range schedule {
		if i < len(monthlySalaries) {
			schedule[i] = monthlySalaries[i]
		} else {
			schedule[i] = decimal.Zero
		}
	}

	report := &domain.DetailReport{Months: make([]domain.MonthlyRecord, 0, MonthsPerYear)}
	state := &CumulativeState{}

	for idx, gross := range schedule {
		contrib, err := rc.Contributions.Calculate(gross)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", idx+1, err)
		}

		monthTaxable := gross.Sub(contrib.Total).Sub(rc.Rules.MonthlyAllowance)
		taxRes, err := rc.Taxes.CumulativeTax(state, monthTaxable)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", idx+1, err)
		}

		// The month's own taxable figure, floored at zero for display; the
		// cumulative columns carry the running year-to-date state.
		monthTaxableShown := monthTaxable
		if monthTaxableShown.LessThan(decimal.Zero) {
			monthTaxableShown = decimal.Zero
		}

		net := gross.Sub(contrib.Total).Sub(taxRes.Tax)
		rec := domain.MonthlyRecord{
			Month:             idx + 1,
			Gross:             gross,
			Pension:           contrib.Pension,
			Medical:           contrib.Medical,
			Unemployment:      contrib.Unemployment,
			HousingFund:       contrib.HousingFund,
			EmployerHousing:   contrib.EmployerHousingFund,
			ContributionTotal: contrib.Total,
			TaxableIncome:     monthTaxableShown,
			CumulativeTaxable: taxRes.TaxableIncome,
			CumulativeTax:     state.TaxWithheld,
			Rate:              taxRes.Rate,
			QuickDeduction:    taxRes.QuickDeduction,
			Tax:               taxRes.Tax,
			Net:               net,
		}

		report.Totals.GrossAnnual = report.Totals.GrossAnnual.Add(gross)
		report.Totals.ContributionAnnual = report.Totals.ContributionAnnual.Add(contrib.Total)
		report.Totals.HousingPersonalAnnual = report.Totals.HousingPersonalAnnual.Add(contrib.HousingFund)
		report.Totals.HousingEmployerAnnual = report.Totals.HousingEmployerAnnual.Add(contrib.EmployerHousingFund)
		report.Totals.TaxAnnual = report.Totals.TaxAnnual.Add(taxRes.Tax)
		report.Totals.NetAnnual = report.Totals.NetAnnual.Add(net)

		roundRecord(&rec, roundToInt)
		report.Months = append(report.Months, rec)
	}

	roundTotals(&report.Totals, roundToInt)
	return report, nil
}

// roundRecord rounds every monetary field of a record. The bracket rate is a
// ratio, not a currency amount, and is left untouched.
func roundRecord(rec *domain.MonthlyRecord, toInt bool) {
	rec.Gross = roundMonetary(rec.Gross, toInt)
	rec.Pension = roundMonetary(rec.Pension, toInt)
	rec.Medical = roundMonetary(rec.Medical, toInt)
	rec.Unemployment = roundMonetary(rec.Unemployment, toInt)
	rec.HousingFund = roundMonetary(rec.HousingFund, toInt)
	rec.EmployerHousing = roundMonetary(rec.EmployerHousing, toInt)
	rec.ContributionTotal = roundMonetary(rec.ContributionTotal, toInt)
	rec.TaxableIncome = roundMonetary(rec.TaxableIncome, toInt)
	rec.CumulativeTaxable = roundMonetary(rec.CumulativeTaxable, toInt)
	rec.CumulativeTax = roundMonetary(rec.CumulativeTax, toInt)
	rec.QuickDeduction = roundMonetary(rec.QuickDeduction, toInt)
	rec.Tax = roundMonetary(rec.Tax, toInt)
	rec.Net = roundMonetary(rec.Net, toInt)
}

func roundSummary(s *domain.AnnualSummary, toInt bool) {
	s.GrossAnnual = roundMonetary(s.GrossAnnual, toInt)
	s.PensionAnnual = roundMonetary(s.PensionAnnual, toInt)
	s.MedicalAnnual = roundMonetary(s.MedicalAnnual, toInt)
	s.UnemploymentAnnual = roundMonetary(s.UnemploymentAnnual, toInt)
	s.HousingFundAnnual = roundMonetary(s.HousingFundAnnual, toInt)
	s.ContributionAnnual = roundMonetary(s.ContributionAnnual, toInt)
	s.TaxableAnnual = roundMonetary(s.TaxableAnnual, toInt)
	s.TaxAnnual = roundMonetary(s.TaxAnnual, toInt)
	s.NetAnnual = roundMonetary(s.NetAnnual, toInt)
	s.NetMonthlyEquivalent = roundMonetary(s.NetMonthlyEquivalent, toInt)
}

func roundTotals(t *domain.DetailTotals, toInt bool) {
	t.GrossAnnual = roundMonetary(t.GrossAnnual, toInt)
	t.ContributionAnnual = roundMonetary(t.ContributionAnnual, toInt)
	t.HousingPersonalAnnual = roundMonetary(t.HousingPersonalAnnual, toInt)
	t.HousingEmployerAnnual = roundMonetary(t.HousingEmployerAnnual, toInt)
	t.TaxAnnual = roundMonetary(t.TaxAnnual, toInt)
	t.NetAnnual = roundMonetary(t.NetAnnual, toInt)
}
