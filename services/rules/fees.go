package rules

import (
	"strings"
	"time"

	"citizenhub/models"
)

const (
	msgNoFees = "No fees applicable"

	// seniorWaiverAge is the age at which the "senior" waiver applies.
	seniorWaiverAge = 60
)

// CalculateFees totals fees for p. A waived rule is excluded from the total
// and its variable factors are never applied.
func (e *Engine) CalculateFees(fees []models.FeeRule, p models.UserProfile, lang string) models.FeeResult {
	result := models.FeeResult{
		Currency:  models.DefaultCurrency,
		Breakdown: []models.FeeLine{},
		Waivers:   []models.WaiverLine{},
	}
	if len(fees) == 0 {
		result.Message = msgNoFees
		return result
	}

	// The first rule's currency labels the whole result, even when later
	// rules name another one. Totals are not converted.
	result.Currency = fees[0].CurrencyOrDefault()

	now := e.now()
	for _, fee := range fees {
		name := fee.Name.ResolveOr(lang, string(fee.FeeType))
		if category, ok := matchingWaiver(fee.Waiver, p, now); ok {
			result.Waivers = append(result.Waivers, models.WaiverLine{
				FeeType:        fee.FeeType,
				Name:           name,
				OriginalAmount: fee.Amount,
				WaiverReason:   waiverReason(fee.Waiver, category, lang),
			})
			continue
		}

		amount := fee.Amount
		for _, vf := range fee.VariableFactors {
			amount = e.applyFactor(amount, vf.Factor, p, now)
		}
		result.Breakdown = append(result.Breakdown, models.FeeLine{
			FeeType:     fee.FeeType,
			Name:        name,
			Amount:      amount,
			Description: fee.Description.ResolveOr(lang, ""),
		})
		result.TotalAmount += amount
	}
	return result
}

func (e *Engine) applyFactor(amount float64, factor string, p models.UserProfile, now time.Time) float64 {
	adj := e.Fees
	switch strings.ToLower(factor) {
	case models.FactorIncome:
		if p.Income == nil {
			return amount
		}
		switch income := *p.Income; {
		case income < adj.LowIncomeThreshold:
			return amount * adj.LowIncomeMultiplier
		case income > adj.HighIncomeThreshold:
			return amount * adj.HighIncomeMultiplier
		}
	case models.FactorAge:
		age, ok := p.AgeAt(now)
		if !ok {
			return amount
		}
		switch {
		case age < adj.MinorAge:
			return amount * adj.MinorMultiplier
		case age >= adj.SeniorAge:
			return amount * adj.SeniorMultiplier
		}
	}
	return amount
}

// matchingWaiver returns the first declared category p qualifies for.
func matchingWaiver(w *models.FeeWaiver, p models.UserProfile, now time.Time) (models.WaiverCategory, bool) {
	if w == nil {
		return "", false
	}
	for _, category := range w.Eligibility {
		if qualifies(category, p, now) {
			return category, true
		}
	}
	return "", false
}

func qualifies(category models.WaiverCategory, p models.UserProfile, now time.Time) bool {
	switch category {
	case models.WaiverBPL:
		return p.IsBPL != nil && *p.IsBPL
	case models.WaiverSenior:
		age, ok := p.AgeAt(now)
		return ok && age >= seniorWaiverAge
	case models.WaiverStudent:
		return p.IsStudent != nil && *p.IsStudent
	case models.WaiverDisability:
		return p.HasDisability != nil && *p.HasDisability
	case models.WaiverFemale:
		return strings.EqualFold(strings.TrimSpace(p.Gender), "female")
	default:
		return false
	}
}

func waiverReason(w *models.FeeWaiver, category models.WaiverCategory, lang string) string {
	if reason, ok := w.Description.Resolve(lang); ok {
		return reason
	}
	return "Waived for " + string(category) + " applicants"
}
