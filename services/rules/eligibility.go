package rules

import (
	"strconv"
	"strings"

	"citizenhub/models"
)

const (
	msgNoCriteria   = "No eligibility criteria specified"
	msgEligible     = "You are eligible for this service"
	msgNotEligible  = "You do not meet one or more eligibility criteria"
	msgInsufficient = "Insufficient information to determine eligibility"
)

// CheckEligibility evaluates every criterion in order against p. Missing
// attributes never stop the traversal; they are collected alongside failures.
func (e *Engine) CheckEligibility(criteria []models.EligibilityCriterion, p models.UserProfile, lang string) models.EligibilityVerdict {
	verdict := models.EligibilityVerdict{
		FailedCriteria: []models.FailedCriterion{},
		MissingData:    []models.MissingData{},
	}
	if len(criteria) == 0 {
		verdict.Eligible = models.Eligible
		verdict.Message = msgNoCriteria
		return verdict
	}

	now := e.now()
	for _, c := range criteria {
		name := c.Name.ResolveOr(lang, string(c.CriteriaType))
		value, field, ok := resolveValue(c, p, now)
		if !ok {
			verdict.MissingData = append(verdict.MissingData, models.MissingData{
				Field:         field,
				CriterionName: name,
			})
			continue
		}
		if passes(c, value) {
			continue
		}
		verdict.FailedCriteria = append(verdict.FailedCriteria, models.FailedCriterion{
			CriteriaType:  c.CriteriaType,
			CriterionName: name,
			UserValue:     value,
			Requirement:   requirement(c),
		})
	}

	switch {
	case len(verdict.FailedCriteria) > 0:
		verdict.Eligible = models.NotEligible
		verdict.Message = msgNotEligible
	case len(verdict.MissingData) > 0:
		verdict.Eligible = models.EligibilityUnknown
		verdict.Message = msgInsufficient
	default:
		verdict.Eligible = models.Eligible
		verdict.Message = msgEligible
	}
	return verdict
}

func passes(c models.EligibilityCriterion, value any) bool {
	switch c.ValidationMethod {
	case models.MethodRange:
		n, ok := toNumber(value)
		if !ok {
			return false
		}
		return (c.MinValue == nil || n >= *c.MinValue) && (c.MaxValue == nil || n <= *c.MaxValue)
	case models.MethodExact:
		n, ok := toNumber(value)
		return ok && c.MinValue != nil && n == *c.MinValue
	case models.MethodMinimum:
		n, ok := toNumber(value)
		return ok && c.MinValue != nil && n >= *c.MinValue
	case models.MethodMaximum:
		n, ok := toNumber(value)
		return ok && c.MaxValue != nil && n <= *c.MaxValue
	case models.MethodList:
		s := toText(value)
		for _, allowed := range c.AllowedValues {
			if strings.EqualFold(s, allowed) {
				return true
			}
		}
		return false
	case models.MethodBoolean:
		return truthy(value)
	case models.MethodCustom:
		return true
	default:
		return false
	}
}

// requirement renders the human-readable condition a failed criterion imposed.
func requirement(c models.EligibilityCriterion) string {
	switch c.ValidationMethod {
	case models.MethodRange:
		switch {
		case c.MinValue != nil && c.MaxValue != nil:
			return "between " + formatNumber(*c.MinValue) + " and " + formatNumber(*c.MaxValue)
		case c.MinValue != nil:
			return "at least " + formatNumber(*c.MinValue)
		case c.MaxValue != nil:
			return "at most " + formatNumber(*c.MaxValue)
		}
	case models.MethodExact:
		if c.MinValue != nil {
			return "exactly " + formatNumber(*c.MinValue)
		}
	case models.MethodMinimum:
		if c.MinValue != nil {
			return "at least " + formatNumber(*c.MinValue)
		}
	case models.MethodMaximum:
		if c.MaxValue != nil {
			return "at most " + formatNumber(*c.MaxValue)
		}
	case models.MethodList:
		return "one of: " + strings.Join(c.AllowedValues, ", ")
	case models.MethodBoolean:
		return "must be true"
	}
	return string(c.ValidationMethod)
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		if n, ok := toNumber(v); ok {
			return formatNumber(n)
		}
		return ""
	}
}

// truthy treats parseable boolean strings by value and any other non-empty
// string as true.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.TrimSpace(t)
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return s != ""
	default:
		n, ok := toNumber(v)
		return ok && n != 0
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
