package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one tier of the progressive income tax table.
// UpperBound is the inclusive ceiling of taxable income covered by the tier;
// the last tier of a table carries an effectively unbounded ceiling.
type TaxBracket struct {
	UpperBound     decimal.Decimal `yaml:"upper_bound" json:"upper_bound"`
	Rate           decimal.Decimal `yaml:"rate" json:"rate"`
	QuickDeduction decimal.Decimal `yaml:"quick_deduction" json:"quick_deduction"`
}

// ContributionRules holds the social-insurance and housing-fund parameters
// for one city and year.
type ContributionRules struct {
	BaseFloor               decimal.Decimal `yaml:"base_floor" json:"base_floor"`
	BaseCeiling             decimal.Decimal `yaml:"base_ceiling" json:"base_ceiling"`
	PensionRate             decimal.Decimal `yaml:"pension_rate" json:"pension_rate"`
	MedicalRate             decimal.Decimal `yaml:"medical_rate" json:"medical_rate"`
	UnemploymentRate        decimal.Decimal `yaml:"unemployment_rate" json:"unemployment_rate"`
	HousingFundRate         decimal.Decimal `yaml:"housing_fund_rate" json:"housing_fund_rate"`
	EmployerHousingFundRate decimal.Decimal `yaml:"employer_housing_fund_rate" json:"employer_housing_fund_rate"`
}

// RuleSet bundles every statutory parameter the calculation engine needs.
// It is immutable after load and safe to share across goroutines.
type RuleSet struct {
	City             string            `yaml:"city" json:"city"`
	Year             int               `yaml:"year" json:"year"`
	Contributions    ContributionRules `yaml:"contributions" json:"contributions"`
	MonthlyAllowance decimal.Decimal   `yaml:"monthly_allowance" json:"monthly_allowance"`
	TaxBrackets      []TaxBracket      `yaml:"tax_brackets" json:"tax_brackets"`
}

// BracketCeilingUnbounded marks the last tier of a bracket table. Any taxable
// income compares below it.
var BracketCeilingUnbounded = decimal.New(1, 15)

// ShanghaiRules returns the built-in rule set for Shanghai salaried employees.
func ShanghaiRules() *RuleSet {
	return &RuleSet{
		City: "Shanghai",
		Year: 2024,
		Contributions: ContributionRules{
			BaseFloor:               decimal.NewFromInt(2690),
			BaseCeiling:             decimal.NewFromInt(36921),
			PensionRate:             decimal.NewFromFloat(0.08),
			MedicalRate:             decimal.NewFromFloat(0.02),
			UnemploymentRate:        decimal.NewFromFloat(0.005),
			HousingFundRate:         decimal.NewFromFloat(0.07),
			EmployerHousingFundRate: decimal.NewFromFloat(0.07),
		},
		MonthlyAllowance: decimal.NewFromInt(5000),
		TaxBrackets: []TaxBracket{
			{decimal.NewFromInt(36000), decimal.NewFromFloat(0.03), decimal.Zero},
			{decimal.NewFromInt(144000), decimal.NewFromFloat(0.10), decimal.NewFromInt(2520)},
			{decimal.NewFromInt(300000), decimal.NewFromFloat(0.20), decimal.NewFromInt(16920)},
			{decimal.NewFromInt(420000), decimal.NewFromFloat(0.25), decimal.NewFromInt(31920)},
			{decimal.NewFromInt(660000), decimal.NewFromFloat(0.30), decimal.NewFromInt(52920)},
			{decimal.NewFromInt(960000), decimal.NewFromFloat(0.35), decimal.NewFromInt(85920)},
			{BracketCeilingUnbounded, decimal.NewFromFloat(0.45), decimal.NewFromInt(181920)},
		},
	}
}

// TotalEmployeeRate is the sum of the four employee-side contribution rates.
func (cr ContributionRules) TotalEmployeeRate() decimal.Decimal {
	return cr.PensionRate.Add(cr.MedicalRate).Add(cr.UnemploymentRate).Add(cr.HousingFundRate)
}
