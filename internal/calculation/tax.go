package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shtax/salary-calculator/internal/domain"
)

// TaxEngine applies the progressive bracket table to taxable income. One
// table serves both modes: monthly-standalone taxes a single month's figure,
// cumulative-annual taxes the year-to-date figure and nets out tax already
// withheld.
type TaxEngine struct {
	Brackets []domain.TaxBracket
}

// CumulativeState carries the running year-to-date figures across the months
// of one cumulative calculation run. It is local to a single report call;
// nothing persists between runs.
type CumulativeState struct {
	TaxableIncome decimal.Decimal
	TaxWithheld   decimal.Decimal
}

// NewTaxEngine creates a tax engine with the built-in Shanghai bracket table.
func NewTaxEngine() *TaxEngine {
	return NewTaxEngineWithConfig(domain.ShanghaiRules().TaxBrackets)
}

// NewTaxEngineWithConfig creates a tax engine with a configurable bracket table.
func NewTaxEngineWithConfig(brackets []domain.TaxBracket) *TaxEngine {
	return &TaxEngine{Brackets: brackets}
}

// lookupBracket selects the first bracket whose upper bound is at or above the
// taxable income. Boundary values belong to the lower bracket.
func (te *TaxEngine) lookupBracket(taxable decimal.Decimal) domain.TaxBracket {
	for _, b := range te.Brackets {
		if taxable.LessThanOrEqual(b.UpperBound) {
			return b
		}
	}
	// The table's last entry is effectively unbounded; validation guarantees
	// we never fall through for a table loaded via config.
	return te.Brackets[len(te.Brackets)-1]
}

// bracketTax is the quick-deduction formula: taxable × rate − quick, floored
// at zero.
func (te *TaxEngine) bracketTax(taxable decimal.Decimal, b domain.TaxBracket) decimal.Decimal {
	tax := taxable.Mul(b.Rate).Sub(b.QuickDeduction)
	if tax.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return tax
}

// MonthlyTax computes standalone tax for one month's taxable income. The
// caller has already floored negative taxable income to zero; a negative
// value here is a programming error and fails with ErrInvalidInput.
func (te *TaxEngine) MonthlyTax(taxable decimal.Decimal) (domain.TaxResult, error) {
	if taxable.LessThan(decimal.Zero) {
		return domain.TaxResult{}, fmt.Errorf("taxable income cannot be negative, got %s: %w", taxable, ErrInvalidInput)
	}

	b := te.lookupBracket(taxable)
	return domain.TaxResult{
		TaxableIncome:  taxable,
		Tax:            te.bracketTax(taxable, b),
		Rate:           b.Rate,
		QuickDeduction: b.QuickDeduction,
	}, nil
}

// CumulativeTax advances the year-to-date state by one month and returns the
// incremental tax due for that month: tax on the cumulative figure minus tax
// already withheld, floored at zero. The month's taxable income may be
// negative (a low or zero month pulls the running figure down); the running
// figure is floored at zero before bracket lookup.
func (te *TaxEngine) CumulativeTax(state *CumulativeState, monthTaxable decimal.Decimal) (domain.TaxResult, error) {
	if state == nil {
		return domain.TaxResult{}, fmt.Errorf("cumulative state is required: %w", ErrInvalidInput)
	}

	state.TaxableIncome = state.TaxableIncome.Add(monthTaxable)

	taxable := state.TaxableIncome
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	b := te.lookupBracket(taxable)
	monthTax := te.bracketTax(taxable, b).Sub(state.TaxWithheld)
	if monthTax.LessThan(decimal.Zero) {
		// Tax already withheld in prior months is never refunded mid-year.
		monthTax = decimal.Zero
	}
	state.TaxWithheld = state.TaxWithheld.Add(monthTax)

	return domain.TaxResult{
		TaxableIncome:  taxable,
		Tax:            monthTax,
		Rate:           b.Rate,
		QuickDeduction: b.QuickDeduction,
	}, nil
}
