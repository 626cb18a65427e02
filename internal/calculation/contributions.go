package calculation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shtax/salary-calculator/internal/domain"
)

// ErrInvalidInput marks negative or otherwise unusable salary figures. The
// core never retries: every calculation is deterministic, so a rejected input
// is rejected forever.
var ErrInvalidInput = errors.New("invalid input")

// ContributionCalculator computes the employee-side social-insurance and
// housing-fund deductions for one month of gross salary.
type ContributionCalculator struct {
	Rules domain.ContributionRules
}

// NewContributionCalculator creates a contribution calculator with the
// built-in Shanghai rules.
func NewContributionCalculator() *ContributionCalculator {
	return NewContributionCalculatorWithConfig(domain.ShanghaiRules().Contributions)
}

// NewContributionCalculatorWithConfig creates a contribution calculator with
// configurable rules.
func NewContributionCalculatorWithConfig(rules domain.ContributionRules) *ContributionCalculator {
	return &ContributionCalculator{Rules: rules}
}

// ContributionBase clamps gross salary into the legal base range. Salaries
// below the floor or above the ceiling are clamped, not rejected.
func (cc *ContributionCalculator) ContributionBase(gross decimal.Decimal) decimal.Decimal {
	if gross.LessThan(cc.Rules.BaseFloor) {
		return cc.Rules.BaseFloor
	}
	if gross.GreaterThan(cc.Rules.BaseCeiling) {
		return cc.Rules.BaseCeiling
	}
	return gross
}

// Calculate derives the four employee contributions plus the employer
// housing-fund share from gross monthly salary.
func (cc *ContributionCalculator) Calculate(gross decimal.Decimal) (domain.ContributionBreakdown, error) {
	if gross.LessThan(decimal.Zero) {
		return domain.ContributionBreakdown{}, fmt.Errorf("gross monthly salary cannot be negative, got %s: %w", gross, ErrInvalidInput)
	}

	base := cc.ContributionBase(gross)
	pension := base.Mul(cc.Rules.PensionRate)
	medical := base.Mul(cc.Rules.MedicalRate)
	unemployment := base.Mul(cc.Rules.UnemploymentRate)
	housing := base.Mul(cc.Rules.HousingFundRate)

	return domain.ContributionBreakdown{
		Base:                base,
		Pension:             pension,
		Medical:             medical,
		Unemployment:        unemployment,
		HousingFund:         housing,
		EmployerHousingFund: base.Mul(cc.Rules.EmployerHousingFundRate),
		Total:               pension.Add(medical).Add(unemployment).Add(housing),
	}, nil
}
