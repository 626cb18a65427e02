package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxMode selects how the tax engine treats taxable income.
type TaxMode string

const (
	// ModeMonthly taxes a single month standalone.
	ModeMonthly TaxMode = "monthly"
	// ModeCumulativeAnnual applies the statutory year-to-date withholding
	// method across months of one calendar year.
	ModeCumulativeAnnual TaxMode = "cumulative_annual"
)

// ParseTaxMode maps a user-supplied mode name to a TaxMode.
func ParseTaxMode(s string) (TaxMode, error) {
	switch s {
	case string(ModeMonthly):
		return ModeMonthly, nil
	case string(ModeCumulativeAnnual), "annual", "cumulative":
		return ModeCumulativeAnnual, nil
	default:
		return "", fmt.Errorf("unrecognized tax mode: %q (expected %q or %q)", s, ModeMonthly, ModeCumulativeAnnual)
	}
}

// ContributionBreakdown holds the employee-side deductions for one month.
type ContributionBreakdown struct {
	Base                decimal.Decimal `json:"base"`
	Pension             decimal.Decimal `json:"pension"`
	Medical             decimal.Decimal `json:"medical"`
	Unemployment        decimal.Decimal `json:"unemployment"`
	HousingFund         decimal.Decimal `json:"housing_fund"`
	EmployerHousingFund decimal.Decimal `json:"employer_housing_fund"`
	Total               decimal.Decimal `json:"total"`
}

// TaxResult carries the tax owed for a period plus the bracket that produced
// it, for transparency in reports.
type TaxResult struct {
	TaxableIncome  decimal.Decimal `json:"taxable_income"`
	Tax            decimal.Decimal `json:"tax"`
	Rate           decimal.Decimal `json:"rate"`
	QuickDeduction decimal.Decimal `json:"quick_deduction"`
}

// MonthlyRecord is one month's full salary breakdown. CumulativeTaxable and
// CumulativeTax are populated only by cumulative-annual reports.
type MonthlyRecord struct {
	Month             int             `json:"month"`
	Gross             decimal.Decimal `json:"gross"`
	Pension           decimal.Decimal `json:"pension"`
	Medical           decimal.Decimal `json:"medical"`
	Unemployment      decimal.Decimal `json:"unemployment"`
	HousingFund       decimal.Decimal `json:"housing_fund"`
	EmployerHousing   decimal.Decimal `json:"employer_housing"`
	ContributionTotal decimal.Decimal `json:"contribution_total"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`
	CumulativeTaxable decimal.Decimal `json:"cumulative_taxable"`
	CumulativeTax     decimal.Decimal `json:"cumulative_tax"`
	Rate              decimal.Decimal `json:"rate"`
	QuickDeduction    decimal.Decimal `json:"quick_deduction"`
	Tax               decimal.Decimal `json:"tax"`
	Net               decimal.Decimal `json:"net"`
}

// AnnualSummary is the aggregate result of the annual report: twelve synthetic
// identical months run through cumulative withholding, final totals only.
type AnnualSummary struct {
	GrossAnnual          decimal.Decimal `json:"gross_annual"`
	PensionAnnual        decimal.Decimal `json:"pension_annual"`
	MedicalAnnual        decimal.Decimal `json:"medical_annual"`
	UnemploymentAnnual   decimal.Decimal `json:"unemployment_annual"`
	HousingFundAnnual    decimal.Decimal `json:"housing_fund_annual"`
	ContributionAnnual   decimal.Decimal `json:"contribution_annual"`
	TaxableAnnual        decimal.Decimal `json:"taxable_annual"`
	TaxAnnual            decimal.Decimal `json:"tax_annual"`
	NetAnnual            decimal.Decimal `json:"net_annual"`
	NetMonthlyEquivalent decimal.Decimal `json:"net_monthly_equivalent"`
}

// DetailTotals aggregates a twelve-month detail report.
type DetailTotals struct {
	GrossAnnual           decimal.Decimal `json:"gross_annual"`
	ContributionAnnual    decimal.Decimal `json:"contribution_annual"`
	HousingPersonalAnnual decimal.Decimal `json:"housing_personal_annual"`
	HousingEmployerAnnual decimal.Decimal `json:"housing_employer_annual"`
	TaxAnnual             decimal.Decimal `json:"tax_annual"`
	NetAnnual             decimal.Decimal `json:"net_annual"`
}

// DetailReport is an ordered twelve-month breakdown with running cumulative
// figures, suitable for tabular display and export.
type DetailReport struct {
	Months []MonthlyRecord `json:"months"`
	Totals DetailTotals    `json:"totals"`
}
