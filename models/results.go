package models

import (
	"encoding/json"
	"fmt"
)

// Eligibility is the tri-state outcome of an eligibility check. It encodes as
// true, false or "unknown".
type Eligibility int

const (
	NotEligible Eligibility = iota
	Eligible
	EligibilityUnknown
)

func (e Eligibility) String() string {
	switch e {
	case Eligible:
		return "eligible"
	case NotEligible:
		return "not_eligible"
	default:
		return "unknown"
	}
}

func (e Eligibility) MarshalJSON() ([]byte, error) {
	switch e {
	case Eligible:
		return []byte("true"), nil
	case NotEligible:
		return []byte("false"), nil
	default:
		return []byte(`"unknown"`), nil
	}
}

func (e *Eligibility) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		if t {
			*e = Eligible
		} else {
			*e = NotEligible
		}
	case string:
		if t != "unknown" {
			return fmt.Errorf("invalid eligibility %q", t)
		}
		*e = EligibilityUnknown
	default:
		return fmt.Errorf("invalid eligibility %s", string(b))
	}
	return nil
}

// FailedCriterion describes a criterion the applicant did not satisfy.
type FailedCriterion struct {
	CriteriaType  CriteriaType `json:"criteriaType"`
	CriterionName string       `json:"criterionName"`
	UserValue     any          `json:"userValue"`
	Requirement   string       `json:"requirement"`
}

// MissingData names a profile field needed to evaluate a criterion.
type MissingData struct {
	Field         string `json:"field"`
	CriterionName string `json:"criterionName"`
}

type EligibilityVerdict struct {
	Eligible       Eligibility       `json:"eligible"`
	Message        string            `json:"message"`
	FailedCriteria []FailedCriterion `json:"failedCriteria"`
	MissingData    []MissingData     `json:"missingData"`
}

type FeeLine struct {
	FeeType     FeeType `json:"feeType"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type WaiverLine struct {
	FeeType        FeeType `json:"feeType"`
	Name           string  `json:"name"`
	OriginalAmount float64 `json:"originalAmount"`
	WaiverReason   string  `json:"waiverReason"`
}

type FeeResult struct {
	TotalAmount float64      `json:"totalAmount"`
	Currency    string       `json:"currency"`
	Breakdown   []FeeLine    `json:"breakdown"`
	Waivers     []WaiverLine `json:"waivers"`
	Message     string       `json:"message,omitempty"`
}

type ValidDocument struct {
	Type DocumentType `json:"type"`
	File string       `json:"file"`
	Name string       `json:"name"`
}

type InvalidDocument struct {
	Type   DocumentType `json:"type"`
	File   string       `json:"file"`
	Reason string       `json:"reason"`
}

type MissingDocument struct {
	Type DocumentType `json:"type"`
	Name string       `json:"name"`
}

type DocumentValidation struct {
	Valid            bool              `json:"valid"`
	Message          string            `json:"message"`
	ValidDocuments   []ValidDocument   `json:"validDocuments"`
	InvalidDocuments []InvalidDocument `json:"invalidDocuments"`
	MissingMandatory []MissingDocument `json:"missingMandatory"`
}

// StatusInfo is the rendered template for an application status code.
type StatusInfo struct {
	Valid             bool     `json:"valid"`
	Status            string   `json:"status,omitempty"`
	Title             string   `json:"title,omitempty"`
	Message           string   `json:"message,omitempty"`
	NextSteps         []string `json:"nextSteps,omitempty"`
	EstimatedTime     string   `json:"estimatedTime,omitempty"`
	AvailableStatuses []string `json:"availableStatuses,omitempty"`
}
