package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaxMode(t *testing.T) {
	tests := []struct {
		input    string
		expected TaxMode
	}{
		{"monthly", ModeMonthly},
		{"cumulative_annual", ModeCumulativeAnnual},
		{"annual", ModeCumulativeAnnual},
		{"cumulative", ModeCumulativeAnnual},
	}
	for _, tt := range tests {
		mode, err := ParseTaxMode(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, mode, "input %q", tt.input)
	}

	_, err := ParseTaxMode("weekly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized tax mode")
}

func TestShanghaiRules(t *testing.T) {
	rules := ShanghaiRules()

	assert.Equal(t, "Shanghai", rules.City)
	assert.True(t, rules.Contributions.BaseFloor.Equal(decimal.NewFromInt(2690)))
	assert.True(t, rules.Contributions.BaseCeiling.Equal(decimal.NewFromInt(36921)))
	assert.True(t, rules.MonthlyAllowance.Equal(decimal.NewFromInt(5000)))
	require.Len(t, rules.TaxBrackets, 7)

	// Bounds strictly ascend and the last tier is effectively unbounded.
	prev := decimal.Zero
	for i, b := range rules.TaxBrackets {
		assert.True(t, b.UpperBound.GreaterThan(prev), "bracket %d out of order", i)
		prev = b.UpperBound
	}
	assert.True(t, rules.TaxBrackets[6].UpperBound.Equal(BracketCeilingUnbounded))
}

func TestTotalEmployeeRate(t *testing.T) {
	rate := ShanghaiRules().Contributions.TotalEmployeeRate()
	assert.True(t, rate.Equal(decimal.RequireFromString("0.175")), "got %s", rate)
}
