package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyTaxBracketSelection(t *testing.T) {
	te := NewTaxEngine()

	tests := []struct {
		name         string
		taxable      decimal.Decimal
		expectedTax  decimal.Decimal
		expectedRate decimal.Decimal
	}{
		{
			name:         "Zero taxable income owes nothing",
			taxable:      decimal.Zero,
			expectedTax:  decimal.Zero,
			expectedRate: decimal.RequireFromString("0.03"),
		},
		{
			name:         "Lowest bracket",
			taxable:      decimal.NewFromInt(4900),
			expectedTax:  decimal.NewFromInt(147),
			expectedRate: decimal.RequireFromString("0.03"),
		},
		{
			name:         "Boundary value belongs to the lower bracket",
			taxable:      decimal.NewFromInt(36000),
			expectedTax:  decimal.NewFromInt(1080),
			expectedRate: decimal.RequireFromString("0.03"),
		},
		{
			name:         "Just past the boundary moves up a bracket",
			taxable:      decimal.RequireFromString("36000.01"),
			expectedTax:  decimal.RequireFromString("1080.001"),
			expectedRate: decimal.RequireFromString("0.10"),
		},
		{
			name:         "Middle bracket with quick deduction",
			taxable:      decimal.NewFromInt(200000),
			expectedTax:  decimal.NewFromInt(23080),
			expectedRate: decimal.RequireFromString("0.20"),
		},
		{
			name:         "Top bracket is unbounded",
			taxable:      decimal.NewFromInt(2000000),
			expectedTax:  decimal.NewFromInt(718080),
			expectedRate: decimal.RequireFromString("0.45"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := te.MonthlyTax(tt.taxable)
			require.NoError(t, err)
			assert.True(t, result.Tax.Equal(tt.expectedTax),
				"Expected tax %s, got %s", tt.expectedTax, result.Tax)
			assert.True(t, result.Rate.Equal(tt.expectedRate),
				"Expected rate %s, got %s", tt.expectedRate, result.Rate)
		})
	}
}

func TestMonthlyTaxNeverNegative(t *testing.T) {
	te := NewTaxEngine()

	// Every bracket's quick deduction must not push tax below zero anywhere
	// in its range.
	for _, taxable := range []decimal.Decimal{
		decimal.Zero,
		decimal.RequireFromString("0.01"),
		decimal.NewFromInt(36001),
		decimal.NewFromInt(144001),
	} {
		result, err := te.MonthlyTax(taxable)
		require.NoError(t, err)
		assert.True(t, result.Tax.GreaterThanOrEqual(decimal.Zero),
			"taxable %s produced negative tax %s", taxable, result.Tax)
	}
}

func TestMonthlyTaxRejectsNegativeTaxable(t *testing.T) {
	te := NewTaxEngine()

	_, err := te.MonthlyTax(decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCumulativeTaxYearToDate(t *testing.T) {
	te := NewTaxEngine()
	monthTaxable := decimal.NewFromInt(4900)

	state := &CumulativeState{}
	var monthTaxes []decimal.Decimal
	for m := 0; m < 12; m++ {
		result, err := te.CumulativeTax(state, monthTaxable)
		require.NoError(t, err)
		monthTaxes = append(monthTaxes, result.Tax)
	}

	// Months 1-7 stay inside the 3% tier of the cumulative figure; month 8
	// crosses into 10% and absorbs the catch-up; months 9-12 settle at the
	// marginal amount.
	for m := 0; m < 7; m++ {
		assert.True(t, monthTaxes[m].Equal(decimal.NewFromInt(147)),
			"month %d: expected 147, got %s", m+1, monthTaxes[m])
	}
	assert.True(t, monthTaxes[7].Equal(decimal.NewFromInt(371)),
		"month 8: expected 371, got %s", monthTaxes[7])
	for m := 8; m < 12; m++ {
		assert.True(t, monthTaxes[m].Equal(decimal.NewFromInt(490)),
			"month %d: expected 490, got %s", m+1, monthTaxes[m])
	}
}

func TestCumulativeTaxReconciliation(t *testing.T) {
	te := NewTaxEngine()

	// The sum of twelve incremental withholdings must equal the bracket
	// formula applied once to the full-year figure.
	for _, monthTaxable := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(1000),
		decimal.NewFromInt(4900),
		decimal.RequireFromString("8333.33"),
		decimal.NewFromInt(50000),
		decimal.NewFromInt(100000),
	} {
		state := &CumulativeState{}
		total := decimal.Zero
		for m := 0; m < 12; m++ {
			result, err := te.CumulativeTax(state, monthTaxable)
			require.NoError(t, err)
			total = total.Add(result.Tax)
		}

		direct, err := te.MonthlyTax(monthTaxable.Mul(decimal.NewFromInt(12)))
		require.NoError(t, err)
		assert.True(t, total.Equal(direct.Tax),
			"monthly taxable %s: incremental sum %s != direct %s", monthTaxable, total, direct.Tax)
	}
}

func TestCumulativeTaxNegativeMonthPullsStateDown(t *testing.T) {
	te := NewTaxEngine()
	state := &CumulativeState{}

	// A strong first month followed by a deeply negative one: tax already
	// withheld is not refunded and the incremental tax floors at zero.
	first, err := te.CumulativeTax(state, decimal.NewFromInt(50000))
	require.NoError(t, err)
	assert.True(t, first.Tax.GreaterThan(decimal.Zero))

	second, err := te.CumulativeTax(state, decimal.NewFromInt(-60000))
	require.NoError(t, err)
	assert.True(t, second.Tax.Equal(decimal.Zero), "expected zero, got %s", second.Tax)
	assert.True(t, state.TaxWithheld.Equal(first.Tax))
}

func TestCumulativeTaxRequiresState(t *testing.T) {
	te := NewTaxEngine()

	_, err := te.CumulativeTax(nil, decimal.NewFromInt(100))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
