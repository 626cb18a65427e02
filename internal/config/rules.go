package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/shtax/salary-calculator/internal/domain"
)

// RulesParser handles loading of rule-set files
type RulesParser struct{}

// NewRulesParser creates a new rules parser
func NewRulesParser() *RulesParser {
	return &RulesParser{}
}

// LoadFromFile loads a rule set from a YAML file
func (rp *RulesParser) LoadFromFile(filename string) (*domain.RuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rp.ValidateRuleSet(&rules); err != nil {
		return nil, fmt.Errorf("rule set validation failed: %w", err)
	}

	return &rules, nil
}

// ValidateRuleSet validates a loaded rule set
func (rp *RulesParser) ValidateRuleSet(rules *domain.RuleSet) error {
	if err := rp.validateContributions(&rules.Contributions); err != nil {
		return fmt.Errorf("contribution rules validation failed: %w", err)
	}
	if rules.MonthlyAllowance.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly allowance cannot be negative")
	}
	if err := rp.validateBrackets(rules.TaxBrackets); err != nil {
		return fmt.Errorf("tax bracket validation failed: %w", err)
	}
	return nil
}

// validateContributions validates the social-insurance and housing-fund rules
func (rp *RulesParser) validateContributions(cr *domain.ContributionRules) error {
	if cr.BaseFloor.LessThan(decimal.Zero) {
		return fmt.Errorf("base floor cannot be negative")
	}
	if cr.BaseCeiling.LessThan(cr.BaseFloor) {
		return fmt.Errorf("base ceiling (%s) cannot be below base floor (%s)", cr.BaseCeiling, cr.BaseFloor)
	}

	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"pension rate", cr.PensionRate},
		{"medical rate", cr.MedicalRate},
		{"unemployment rate", cr.UnemploymentRate},
		{"housing fund rate", cr.HousingFundRate},
		{"employer housing fund rate", cr.EmployerHousingFundRate},
	}
	for _, r := range rates {
		if r.rate.LessThan(decimal.Zero) || r.rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be between 0 and 1, got %s", r.name, r.rate)
		}
	}
	return nil
}

// validateBrackets validates the progressive bracket table
func (rp *RulesParser) validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("at least one tax bracket is required")
	}

	prev := decimal.Zero
	for i, b := range brackets {
		if b.UpperBound.LessThanOrEqual(prev) {
			return fmt.Errorf("bracket %d: upper bound %s must exceed previous bound %s", i, b.UpperBound, prev)
		}
		if b.Rate.LessThanOrEqual(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate must be between 0 and 1, got %s", i, b.Rate)
		}
		if b.QuickDeduction.LessThan(decimal.Zero) {
			return fmt.Errorf("bracket %d: quick deduction cannot be negative", i)
		}
		prev = b.UpperBound
	}
	return nil
}
