package rules

import (
	"strings"
	"time"

	"citizenhub/models"
)

// accessor reads the profile attribute a criteria type is evaluated against.
// ok is false when the attribute was not supplied.
type accessor struct {
	field string
	read  func(p models.UserProfile, now time.Time) (any, bool)
}

func text(s string) (any, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

var accessors = map[models.CriteriaType]accessor{
	models.CriteriaAge: {"dateOfBirth", func(p models.UserProfile, now time.Time) (any, bool) {
		age, ok := p.AgeAt(now)
		return age, ok
	}},
	models.CriteriaIncome: {"income", func(p models.UserProfile, _ time.Time) (any, bool) {
		if p.Income == nil {
			return nil, false
		}
		return *p.Income, true
	}},
	models.CriteriaResidence: {"address.state", func(p models.UserProfile, _ time.Time) (any, bool) {
		if p.Address == nil {
			return nil, false
		}
		return text(p.Address.State)
	}},
	models.CriteriaEducation: {"education.level", func(p models.UserProfile, _ time.Time) (any, bool) {
		if p.Education == nil {
			return nil, false
		}
		return text(p.Education.Level)
	}},
	models.CriteriaGender: {"gender", func(p models.UserProfile, _ time.Time) (any, bool) {
		return text(p.Gender)
	}},
	models.CriteriaMarital: {"maritalStatus", func(p models.UserProfile, _ time.Time) (any, bool) {
		return text(p.MaritalStatus)
	}},
	models.CriteriaOccupation: {"occupation", func(p models.UserProfile, _ time.Time) (any, bool) {
		return text(p.Occupation)
	}},
	models.CriteriaCategory: {"category", func(p models.UserProfile, _ time.Time) (any, bool) {
		return text(p.Category)
	}},
	models.CriteriaDisability: {"hasDisability", func(p models.UserProfile, _ time.Time) (any, bool) {
		if p.HasDisability == nil {
			return nil, false
		}
		return *p.HasDisability, true
	}},
}

// resolveValue returns the profile value for c along with the field name to
// report when it is missing. An "other" criterion reads custom[customField],
// then custom["other"].
func resolveValue(c models.EligibilityCriterion, p models.UserProfile, now time.Time) (any, string, bool) {
	if c.CriteriaType == models.CriteriaOther {
		key := c.CustomField
		if key == "" {
			key = string(models.CriteriaOther)
		}
		if v, ok := customValue(p.Custom, key); ok {
			return v, "custom." + key, true
		}
		if key != string(models.CriteriaOther) {
			if v, ok := customValue(p.Custom, string(models.CriteriaOther)); ok {
				return v, "custom." + key, true
			}
		}
		return nil, "custom." + key, false
	}

	acc, ok := accessors[c.CriteriaType]
	if !ok {
		// Unknown types never pass construction; treat as missing if one slips through.
		return nil, string(c.CriteriaType), false
	}
	v, present := acc.read(p, now)
	return v, acc.field, present
}

func customValue(custom map[string]any, key string) (any, bool) {
	v, ok := custom[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}
