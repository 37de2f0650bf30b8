package models

import "strings"

// CriteriaType selects which profile attribute a criterion reads.
type CriteriaType string

const (
	CriteriaAge        CriteriaType = "age"
	CriteriaIncome     CriteriaType = "income"
	CriteriaResidence  CriteriaType = "residence"
	CriteriaEducation  CriteriaType = "education"
	CriteriaGender     CriteriaType = "gender"
	CriteriaMarital    CriteriaType = "marital"
	CriteriaOccupation CriteriaType = "occupation"
	CriteriaCategory   CriteriaType = "category"
	CriteriaDisability CriteriaType = "disability"
	CriteriaOther      CriteriaType = "other"
)

// CriteriaTypes lists every criteria type.
var CriteriaTypes = []CriteriaType{
	CriteriaAge, CriteriaIncome, CriteriaResidence, CriteriaEducation, CriteriaGender,
	CriteriaMarital, CriteriaOccupation, CriteriaCategory, CriteriaDisability, CriteriaOther,
}

func (t CriteriaType) IsValid() bool {
	for _, v := range CriteriaTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ValidationMethod is how a resolved profile value is compared.
type ValidationMethod string

const (
	MethodRange   ValidationMethod = "range"
	MethodExact   ValidationMethod = "exact"
	MethodMinimum ValidationMethod = "minimum"
	MethodMaximum ValidationMethod = "maximum"
	MethodList    ValidationMethod = "list"
	MethodBoolean ValidationMethod = "boolean"
	MethodCustom  ValidationMethod = "custom"
)

// ValidationMethods lists every validation method.
var ValidationMethods = []ValidationMethod{
	MethodRange, MethodExact, MethodMinimum, MethodMaximum, MethodList, MethodBoolean, MethodCustom,
}

func (m ValidationMethod) IsValid() bool {
	for _, v := range ValidationMethods {
		if m == v {
			return true
		}
	}
	return false
}

// EligibilityCriterion is one structured predicate attached to a service.
type EligibilityCriterion struct {
	CriteriaType     CriteriaType     `bson:"criteriaType" json:"criteriaType" binding:"required"`
	Name             MultilingualText `bson:"name" json:"name" binding:"required"`
	Description      MultilingualText `bson:"description,omitempty" json:"description,omitempty"`
	MinValue         *float64         `bson:"minValue,omitempty" json:"minValue,omitempty"`
	MaxValue         *float64         `bson:"maxValue,omitempty" json:"maxValue,omitempty"`
	AllowedValues    []string         `bson:"allowedValues,omitempty" json:"allowedValues,omitempty"`
	ValidationMethod ValidationMethod `bson:"validationMethod" json:"validationMethod" binding:"required"`
	// CustomField names the custom profile key read by an "other" criterion.
	CustomField string `bson:"customField,omitempty" json:"customField,omitempty"`
}

// normalize trims and de-duplicates AllowedValues, keeping first occurrence order.
func (c *EligibilityCriterion) normalize() {
	c.CustomField = strings.TrimSpace(c.CustomField)
	if len(c.AllowedValues) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(c.AllowedValues))
	out := c.AllowedValues[:0]
	for _, v := range c.AllowedValues {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	c.AllowedValues = out
}

func (c *EligibilityCriterion) validate(errs *ValidationErrors, field string) {
	if !c.CriteriaType.IsValid() {
		errs.Addf(field+".criteriaType", "unknown criteria type %q", c.CriteriaType)
	}
	c.Name.validate(errs, field+".name", true)
	c.Description.validate(errs, field+".description", false)

	switch c.ValidationMethod {
	case MethodRange:
		if c.MinValue == nil && c.MaxValue == nil {
			errs.Add(field+".minValue", "range requires minValue or maxValue")
		}
		if c.MinValue != nil && c.MaxValue != nil && *c.MinValue > *c.MaxValue {
			errs.Add(field+".maxValue", "maxValue must not be less than minValue")
		}
	case MethodExact, MethodMinimum:
		if c.MinValue == nil {
			errs.Addf(field+".minValue", "%s requires minValue", c.ValidationMethod)
		}
	case MethodMaximum:
		if c.MaxValue == nil {
			errs.Add(field+".maxValue", "maximum requires maxValue")
		}
	case MethodList:
		if len(c.AllowedValues) == 0 {
			errs.Add(field+".allowedValues", "list requires at least one allowed value")
		}
	case MethodBoolean, MethodCustom:
	default:
		errs.Addf(field+".validationMethod", "unknown validation method %q", c.ValidationMethod)
	}
}
