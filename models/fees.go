package models

import (
	"regexp"
	"strings"
)

// DefaultCurrency applies when a fee rule names none.
const DefaultCurrency = "INR"

type FeeType string

const (
	FeeApplication FeeType = "application"
	FeeProcessing  FeeType = "processing"
	FeeService     FeeType = "service"
	FeeStampDuty   FeeType = "stamp_duty"
	FeePenalty     FeeType = "penalty"
	FeeLate        FeeType = "late_fee"
	FeeOther       FeeType = "other"
)

var FeeTypes = []FeeType{FeeApplication, FeeProcessing, FeeService, FeeStampDuty, FeePenalty, FeeLate, FeeOther}

func (t FeeType) IsValid() bool {
	for _, v := range FeeTypes {
		if t == v {
			return true
		}
	}
	return false
}

// WaiverCategory is a tag that, when it matches the applicant, zeroes a fee.
type WaiverCategory string

const (
	WaiverBPL        WaiverCategory = "bpl"
	WaiverSenior     WaiverCategory = "senior"
	WaiverStudent    WaiverCategory = "student"
	WaiverDisability WaiverCategory = "disability"
	WaiverFemale     WaiverCategory = "female"
)

var WaiverCategories = []WaiverCategory{WaiverBPL, WaiverSenior, WaiverStudent, WaiverDisability, WaiverFemale}

func (w WaiverCategory) IsValid() bool {
	for _, v := range WaiverCategories {
		if w == v {
			return true
		}
	}
	return false
}

// Variable factor names understood by the fee calculator.
const (
	FactorIncome = "income"
	FactorAge    = "age"
)

// VariableFactor scales a fee by an applicant attribute. Calculation is a
// free-text description kept for display.
type VariableFactor struct {
	Factor      string `bson:"factor" json:"factor"`
	Calculation string `bson:"calculation,omitempty" json:"calculation,omitempty"`
}

type FeeWaiver struct {
	Eligibility []WaiverCategory `bson:"eligibility" json:"eligibility"`
	Description MultilingualText `bson:"description,omitempty" json:"description,omitempty"`
}

// FeeRule is one chargeable item on a service.
type FeeRule struct {
	FeeType         FeeType          `bson:"feeType" json:"feeType"`
	Name            MultilingualText `bson:"name" json:"name"`
	Description     MultilingualText `bson:"description,omitempty" json:"description,omitempty"`
	Amount          float64          `bson:"amount" json:"amount"`
	Currency        string           `bson:"currency" json:"currency"`
	VariableFactors []VariableFactor `bson:"variableFactors,omitempty" json:"variableFactors,omitempty"`
	Waiver          *FeeWaiver       `bson:"waiver,omitempty" json:"waiver,omitempty"`
}

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// CurrencyOrDefault returns the rule currency, or INR when unset.
func (f FeeRule) CurrencyOrDefault() string {
	if f.Currency == "" {
		return DefaultCurrency
	}
	return f.Currency
}

func (f *FeeRule) normalize() {
	f.Currency = strings.ToUpper(strings.TrimSpace(f.Currency))
	if f.Currency == "" {
		f.Currency = DefaultCurrency
	}
	for i := range f.VariableFactors {
		f.VariableFactors[i].Factor = strings.ToLower(strings.TrimSpace(f.VariableFactors[i].Factor))
	}
	if f.Waiver != nil {
		for i, w := range f.Waiver.Eligibility {
			f.Waiver.Eligibility[i] = WaiverCategory(strings.ToLower(strings.TrimSpace(string(w))))
		}
	}
}

func (f *FeeRule) validate(errs *ValidationErrors, field string) {
	if !f.FeeType.IsValid() {
		errs.Addf(field+".feeType", "unknown fee type %q", f.FeeType)
	}
	f.Name.validate(errs, field+".name", true)
	f.Description.validate(errs, field+".description", false)
	if f.Amount < 0 {
		errs.Add(field+".amount", "amount must not be negative")
	}
	if !currencyCode.MatchString(f.Currency) {
		errs.Add(field+".currency", "currency must be a three-letter ISO code")
	}
	for i, vf := range f.VariableFactors {
		if vf.Factor == "" {
			errs.Addf(field+".variableFactors", "factor %d has no name", i)
		}
	}
	if f.Waiver != nil {
		for _, w := range f.Waiver.Eligibility {
			if !w.IsValid() {
				errs.Addf(field+".waiver.eligibility", "unknown waiver category %q", w)
			}
		}
		f.Waiver.Description.validate(errs, field+".waiver.description", false)
	}
}
