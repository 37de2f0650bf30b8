package models

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ServiceStatus string

const (
	StatusDraft      ServiceStatus = "draft"
	StatusActive     ServiceStatus = "active"
	StatusInactive   ServiceStatus = "inactive"
	StatusDeprecated ServiceStatus = "deprecated"
)

var ServiceStatuses = []ServiceStatus{StatusDraft, StatusActive, StatusInactive, StatusDeprecated}

func (s ServiceStatus) IsValid() bool {
	for _, v := range ServiceStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type ServiceCategory string

const (
	CategoryCertificates ServiceCategory = "certificates"
	CategoryLicenses     ServiceCategory = "licenses"
	CategoryWelfare      ServiceCategory = "welfare"
	CategoryEducation    ServiceCategory = "education"
	CategoryHealth       ServiceCategory = "health"
	CategoryAgriculture  ServiceCategory = "agriculture"
	CategoryEmployment   ServiceCategory = "employment"
	CategoryHousing      ServiceCategory = "housing"
	CategoryTaxation     ServiceCategory = "taxation"
	CategoryUtilities    ServiceCategory = "utilities"
	CategoryTransport    ServiceCategory = "transport"
	CategoryOther        ServiceCategory = "other"
)

var ServiceCategories = []ServiceCategory{
	CategoryCertificates, CategoryLicenses, CategoryWelfare, CategoryEducation,
	CategoryHealth, CategoryAgriculture, CategoryEmployment, CategoryHousing,
	CategoryTaxation, CategoryUtilities, CategoryTransport, CategoryOther,
}

func (c ServiceCategory) IsValid() bool {
	for _, v := range ServiceCategories {
		if c == v {
			return true
		}
	}
	return false
}

type Jurisdiction string

const (
	JurisdictionCentral Jurisdiction = "central"
	JurisdictionState   Jurisdiction = "state"
	JurisdictionLocal   Jurisdiction = "local"
)

func (j Jurisdiction) IsValid() bool {
	return j == JurisdictionCentral || j == JurisdictionState || j == JurisdictionLocal
}

type ProcessStep struct {
	StepNumber        int              `bson:"stepNumber" json:"stepNumber"`
	Title             MultilingualText `bson:"title" json:"title"`
	Description       MultilingualText `bson:"description,omitempty" json:"description,omitempty"`
	EstimatedDuration string           `bson:"estimatedDuration,omitempty" json:"estimatedDuration,omitempty"`
	IsOnline          bool             `bson:"isOnline" json:"isOnline"`
}

type FAQ struct {
	Question MultilingualText `bson:"question" json:"question"`
	Answer   MultilingualText `bson:"answer" json:"answer"`
}

type ProcessingTime struct {
	Min  int    `bson:"min" json:"min"`
	Max  int    `bson:"max" json:"max"`
	Unit string `bson:"unit" json:"unit"`
}

var processingUnits = map[string]bool{"hours": true, "days": true, "weeks": true, "months": true}

// String renders e.g. "7-15 days" or "3 days".
func (p ProcessingTime) String() string {
	if p.Unit == "" {
		return ""
	}
	if p.Min == p.Max || p.Min == 0 {
		return strconv.Itoa(p.Max) + " " + p.Unit
	}
	return strconv.Itoa(p.Min) + "-" + strconv.Itoa(p.Max) + " " + p.Unit
}

type ServiceStats struct {
	Views         int64   `bson:"views" json:"views"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	ReviewCount   int64   `bson:"reviewCount" json:"reviewCount"`
}

// Service is the aggregate root of the directory. Build it with NewService and
// change it with ApplyUpdate so invariants are checked before it is stored.
type Service struct {
	ID                  string                 `bson:"id" json:"id"`
	ShortName           string                 `bson:"shortName" json:"shortName"`
	Name                MultilingualText       `bson:"name" json:"name"`
	Description         MultilingualText       `bson:"description" json:"description"`
	Department          MultilingualText       `bson:"department,omitempty" json:"department,omitempty"`
	Category            ServiceCategory        `bson:"category" json:"category"`
	Jurisdiction        Jurisdiction           `bson:"jurisdiction" json:"jurisdiction"`
	States              []string               `bson:"states,omitempty" json:"states,omitempty"`
	Status              ServiceStatus          `bson:"status" json:"status"`
	EligibilityCriteria []EligibilityCriterion `bson:"eligibilityCriteria" json:"eligibilityCriteria"`
	Fees                []FeeRule              `bson:"fees" json:"fees"`
	RequiredDocuments   []DocumentRequirement  `bson:"requiredDocuments" json:"requiredDocuments"`
	ProcessSteps        []ProcessStep          `bson:"processSteps" json:"processSteps"`
	ProcessingTime      *ProcessingTime        `bson:"processingTime,omitempty" json:"processingTime,omitempty"`
	FAQs                []FAQ                  `bson:"faqs" json:"faqs"`
	Tags                []string               `bson:"tags,omitempty" json:"tags,omitempty"`
	OnlineURL           string                 `bson:"onlineUrl,omitempty" json:"onlineUrl,omitempty"`
	Stats               ServiceStats           `bson:"stats" json:"stats"`
	CreatedBy           string                 `bson:"createdBy" json:"createdBy"`
	UpdatedBy           string                 `bson:"updatedBy" json:"updatedBy"`
	CreatedAt           time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time              `bson:"updatedAt" json:"updatedAt"`
	DeprecatedAt        *time.Time             `bson:"deprecatedAt,omitempty" json:"deprecatedAt,omitempty"`
}

// ServiceDraft is the administrator's input for a new service.
type ServiceDraft struct {
	ShortName           string                 `json:"shortName" binding:"required"`
	Name                MultilingualText       `json:"name" binding:"required"`
	Description         MultilingualText       `json:"description" binding:"required"`
	Department          MultilingualText       `json:"department"`
	Category            ServiceCategory        `json:"category" binding:"required"`
	Jurisdiction        Jurisdiction           `json:"jurisdiction"`
	States              []string               `json:"states"`
	Status              ServiceStatus          `json:"status"`
	EligibilityCriteria []EligibilityCriterion `json:"eligibilityCriteria"`
	Fees                []FeeRule              `json:"fees"`
	RequiredDocuments   []DocumentRequirement  `json:"requiredDocuments"`
	ProcessSteps        []ProcessStep          `json:"processSteps"`
	ProcessingTime      *ProcessingTime        `json:"processingTime"`
	FAQs                []FAQ                  `json:"faqs"`
	Tags                []string               `json:"tags"`
	OnlineURL           string                 `json:"onlineUrl"`
}

// ServiceUpdate is a partial update; nil fields are left untouched.
// ShortName may be repeated but never changed.
type ServiceUpdate struct {
	ShortName           *string                 `json:"shortName"`
	Name                MultilingualText        `json:"name"`
	Description         MultilingualText        `json:"description"`
	Department          MultilingualText        `json:"department"`
	Category            *ServiceCategory        `json:"category"`
	Jurisdiction        *Jurisdiction           `json:"jurisdiction"`
	States              *[]string               `json:"states"`
	EligibilityCriteria *[]EligibilityCriterion `json:"eligibilityCriteria"`
	Fees                *[]FeeRule              `json:"fees"`
	RequiredDocuments   *[]DocumentRequirement  `json:"requiredDocuments"`
	ProcessSteps        *[]ProcessStep          `json:"processSteps"`
	ProcessingTime      *ProcessingTime         `json:"processingTime"`
	FAQs                *[]FAQ                  `json:"faqs"`
	Tags                *[]string               `json:"tags"`
	OnlineURL           *string                 `json:"onlineUrl"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// NormalizeSlug lower-cases and trims a short name for storage and lookup.
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewService validates draft and returns a new service owned by actor.
func NewService(draft ServiceDraft, actor string, now time.Time) (*Service, error) {
	status := draft.Status
	if status == "" {
		status = StatusDraft
	}
	jurisdiction := draft.Jurisdiction
	if jurisdiction == "" {
		jurisdiction = JurisdictionCentral
	}
	s := &Service{
		ID:                  uuid.New().String(),
		ShortName:           NormalizeSlug(draft.ShortName),
		Name:                draft.Name,
		Description:         draft.Description,
		Department:          draft.Department,
		Category:            draft.Category,
		Jurisdiction:        jurisdiction,
		States:              draft.States,
		Status:              status,
		EligibilityCriteria: draft.EligibilityCriteria,
		Fees:                draft.Fees,
		RequiredDocuments:   draft.RequiredDocuments,
		ProcessSteps:        draft.ProcessSteps,
		ProcessingTime:      draft.ProcessingTime,
		FAQs:                draft.FAQs,
		Tags:                draft.Tags,
		OnlineURL:           strings.TrimSpace(draft.OnlineURL),
		CreatedBy:           actor,
		UpdatedBy:           actor,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if s.Status == StatusDeprecated {
		s.DeprecatedAt = &now
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyUpdate returns a copy of s with u applied and re-validated. s is not modified.
func (s *Service) ApplyUpdate(u ServiceUpdate, actor string, now time.Time) (*Service, error) {
	next := s.clone()
	if u.ShortName != nil && NormalizeSlug(*u.ShortName) != s.ShortName {
		var errs ValidationErrors
		errs.Add("shortName", "shortName cannot be changed")
		return nil, errs
	}
	if u.Name != nil {
		next.Name = u.Name
	}
	if u.Description != nil {
		next.Description = u.Description
	}
	if u.Department != nil {
		next.Department = u.Department
	}
	if u.Category != nil {
		next.Category = *u.Category
	}
	if u.Jurisdiction != nil {
		next.Jurisdiction = *u.Jurisdiction
	}
	if u.States != nil {
		next.States = *u.States
	}
	if u.EligibilityCriteria != nil {
		next.EligibilityCriteria = *u.EligibilityCriteria
	}
	if u.Fees != nil {
		next.Fees = *u.Fees
	}
	if u.RequiredDocuments != nil {
		next.RequiredDocuments = *u.RequiredDocuments
	}
	if u.ProcessSteps != nil {
		next.ProcessSteps = *u.ProcessSteps
	}
	if u.ProcessingTime != nil {
		next.ProcessingTime = u.ProcessingTime
	}
	if u.FAQs != nil {
		next.FAQs = *u.FAQs
	}
	if u.Tags != nil {
		next.Tags = *u.Tags
	}
	if u.OnlineURL != nil {
		next.OnlineURL = strings.TrimSpace(*u.OnlineURL)
	}
	next.UpdatedBy = actor
	next.UpdatedAt = now
	next.normalize()
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return &next, nil
}

// WithStatus returns a copy of s moved to status. Moving to deprecated stamps
// DeprecatedAt; leaving it clears the stamp.
func (s *Service) WithStatus(status ServiceStatus, actor string, now time.Time) (*Service, error) {
	if !status.IsValid() {
		var errs ValidationErrors
		errs.Addf("status", "unknown status %q", status)
		return nil, errs
	}
	next := *s
	next.Status = status
	next.UpdatedBy = actor
	next.UpdatedAt = now
	if status == StatusDeprecated {
		if next.DeprecatedAt == nil {
			next.DeprecatedAt = &now
		}
	} else {
		next.DeprecatedAt = nil
	}
	return &next, nil
}

// IsActive reports whether the service accepts evaluation requests.
func (s *Service) IsActive() bool {
	return s.Status == StatusActive
}

// clone copies s deeply enough that normalize on the copy leaves s intact.
// Multilingual maps are shared; normalize never writes them.
func (s *Service) clone() Service {
	c := *s
	c.States = slices.Clone(s.States)
	c.Tags = slices.Clone(s.Tags)
	c.ProcessSteps = slices.Clone(s.ProcessSteps)
	c.FAQs = slices.Clone(s.FAQs)
	c.EligibilityCriteria = slices.Clone(s.EligibilityCriteria)
	for i := range c.EligibilityCriteria {
		c.EligibilityCriteria[i].AllowedValues = slices.Clone(c.EligibilityCriteria[i].AllowedValues)
	}
	c.Fees = slices.Clone(s.Fees)
	for i := range c.Fees {
		c.Fees[i].VariableFactors = slices.Clone(c.Fees[i].VariableFactors)
		if w := c.Fees[i].Waiver; w != nil {
			waiver := *w
			waiver.Eligibility = slices.Clone(w.Eligibility)
			c.Fees[i].Waiver = &waiver
		}
	}
	c.RequiredDocuments = slices.Clone(s.RequiredDocuments)
	for i := range c.RequiredDocuments {
		c.RequiredDocuments[i].AllowedFileTypes = slices.Clone(c.RequiredDocuments[i].AllowedFileTypes)
	}
	return c
}

func (s *Service) normalize() {
	if s.EligibilityCriteria == nil {
		s.EligibilityCriteria = []EligibilityCriterion{}
	}
	if s.Fees == nil {
		s.Fees = []FeeRule{}
	}
	if s.RequiredDocuments == nil {
		s.RequiredDocuments = []DocumentRequirement{}
	}
	if s.ProcessSteps == nil {
		s.ProcessSteps = []ProcessStep{}
	}
	if s.FAQs == nil {
		s.FAQs = []FAQ{}
	}
	for i := range s.EligibilityCriteria {
		s.EligibilityCriteria[i].normalize()
	}
	for i := range s.Fees {
		s.Fees[i].normalize()
	}
	for i := range s.RequiredDocuments {
		s.RequiredDocuments[i].normalize()
	}
	for i, t := range s.Tags {
		s.Tags[i] = strings.ToLower(strings.TrimSpace(t))
	}
}

// Validate checks every invariant of the aggregate and its children.
func (s *Service) Validate() error {
	var errs ValidationErrors

	if s.ID == "" {
		errs.Add("id", "id is required")
	}
	switch {
	case len(s.ShortName) < 3 || len(s.ShortName) > 64:
		errs.Add("shortName", "shortName must be 3-64 characters")
	case !slugPattern.MatchString(s.ShortName):
		errs.Add("shortName", "shortName may contain lower-case letters, digits and single hyphens")
	}
	s.Name.validate(&errs, "name", true)
	s.Description.validate(&errs, "description", true)
	s.Department.validate(&errs, "department", false)
	if !s.Category.IsValid() {
		errs.Addf("category", "unknown category %q", s.Category)
	}
	if !s.Jurisdiction.IsValid() {
		errs.Addf("jurisdiction", "unknown jurisdiction %q", s.Jurisdiction)
	}
	if !s.Status.IsValid() {
		errs.Addf("status", "unknown status %q", s.Status)
	}

	for i := range s.EligibilityCriteria {
		s.EligibilityCriteria[i].validate(&errs, "eligibilityCriteria["+strconv.Itoa(i)+"]")
	}
	for i := range s.Fees {
		s.Fees[i].validate(&errs, "fees["+strconv.Itoa(i)+"]")
	}
	for i := range s.RequiredDocuments {
		s.RequiredDocuments[i].validate(&errs, "requiredDocuments["+strconv.Itoa(i)+"]")
	}

	steps := make(map[int]bool, len(s.ProcessSteps))
	for i, step := range s.ProcessSteps {
		field := "processSteps[" + strconv.Itoa(i) + "]"
		if step.StepNumber < 1 {
			errs.Add(field+".stepNumber", "stepNumber must be positive")
		} else if steps[step.StepNumber] {
			errs.Addf(field+".stepNumber", "duplicate step number %d", step.StepNumber)
		}
		steps[step.StepNumber] = true
		step.Title.validate(&errs, field+".title", true)
		step.Description.validate(&errs, field+".description", false)
	}

	if pt := s.ProcessingTime; pt != nil {
		if !processingUnits[pt.Unit] {
			errs.Addf("processingTime.unit", "unknown unit %q", pt.Unit)
		}
		if pt.Min < 0 || pt.Max < 0 || pt.Min > pt.Max {
			errs.Add("processingTime", "processing time requires 0 <= min <= max")
		}
	}

	for i, faq := range s.FAQs {
		field := "faqs[" + strconv.Itoa(i) + "]"
		faq.Question.validate(&errs, field+".question", true)
		faq.Answer.validate(&errs, field+".answer", true)
	}

	return errs.Err()
}
