package directory

import (
	"time"

	"citizenhub/models"
)

// ServiceSummary is the list-view projection of a service in one language.
type ServiceSummary struct {
	ID             string                 `json:"id"`
	ShortName      string                 `json:"shortName"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Department     string                 `json:"department,omitempty"`
	Category       models.ServiceCategory `json:"category"`
	Jurisdiction   models.Jurisdiction    `json:"jurisdiction"`
	Status         models.ServiceStatus   `json:"status"`
	ProcessingTime string                 `json:"processingTime,omitempty"`
	IsOnline       bool                   `json:"isOnline"`
	Stats          models.ServiceStats    `json:"stats"`
}

type CriterionView struct {
	CriteriaType     models.CriteriaType     `json:"criteriaType"`
	Name             string                  `json:"name"`
	Description      string                  `json:"description,omitempty"`
	ValidationMethod models.ValidationMethod `json:"validationMethod"`
	MinValue         *float64                `json:"minValue,omitempty"`
	MaxValue         *float64                `json:"maxValue,omitempty"`
	AllowedValues    []string                `json:"allowedValues,omitempty"`
}

type WaiverView struct {
	Eligibility []models.WaiverCategory `json:"eligibility"`
	Description string                  `json:"description,omitempty"`
}

type FeeView struct {
	FeeType     models.FeeType `json:"feeType"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Waiver      *WaiverView    `json:"waiver,omitempty"`
}

type DocumentView struct {
	DocumentType     models.DocumentType `json:"documentType"`
	Name             string              `json:"name"`
	Description      string              `json:"description,omitempty"`
	IsMandatory      bool                `json:"isMandatory"`
	AllowedFileTypes []string            `json:"allowedFileTypes,omitempty"`
	MaxFileSizeKB    *float64            `json:"maxFileSizeKB,omitempty"`
}

type StepView struct {
	StepNumber        int    `json:"stepNumber"`
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	EstimatedDuration string `json:"estimatedDuration,omitempty"`
	IsOnline          bool   `json:"isOnline"`
}

type FAQView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ServiceDetail is the full public view of a service in one language.
type ServiceDetail struct {
	ServiceSummary
	Language            string                 `json:"language"`
	States              []string               `json:"states,omitempty"`
	EligibilityCriteria []CriterionView        `json:"eligibilityCriteria"`
	Fees                []FeeView              `json:"fees"`
	RequiredDocuments   []DocumentView         `json:"requiredDocuments"`
	ProcessSteps        []StepView             `json:"processSteps"`
	FAQs                []FAQView              `json:"faqs"`
	Tags                []string               `json:"tags,omitempty"`
	OnlineURL           string                 `json:"onlineUrl,omitempty"`
	AvailableLanguages  []string               `json:"availableLanguages"`
	UpdatedAt           time.Time              `json:"updatedAt"`
	ProcessingTimeRaw   *models.ProcessingTime `json:"processingTimeRange,omitempty"`
}

// ServiceList is one page of summaries.
type ServiceList struct {
	Services   []ServiceSummary `json:"services"`
	Pagination models.Page      `json:"pagination"`
}

type CategoryCount struct {
	Category models.ServiceCategory `json:"category"`
	Count    int64                  `json:"count"`
}

func summarize(s *models.Service, lang string) ServiceSummary {
	sum := ServiceSummary{
		ID:           s.ID,
		ShortName:    s.ShortName,
		Name:         s.Name.ResolveOr(lang, s.ShortName),
		Description:  s.Description.ResolveOr(lang, ""),
		Department:   s.Department.ResolveOr(lang, ""),
		Category:     s.Category,
		Jurisdiction: s.Jurisdiction,
		Status:       s.Status,
		IsOnline:     s.OnlineURL != "",
		Stats:        s.Stats,
	}
	if s.ProcessingTime != nil {
		sum.ProcessingTime = s.ProcessingTime.String()
	}
	return sum
}

func faqViews(faqs []models.FAQ, lang string) []FAQView {
	out := make([]FAQView, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, FAQView{
			Question: f.Question.ResolveOr(lang, ""),
			Answer:   f.Answer.ResolveOr(lang, ""),
		})
	}
	return out
}

// detail renders s in lang. Every text field falls back to English.
func detail(s *models.Service, lang string) *ServiceDetail {
	d := &ServiceDetail{
		ServiceSummary:      summarize(s, lang),
		Language:            lang,
		States:              s.States,
		EligibilityCriteria: make([]CriterionView, 0, len(s.EligibilityCriteria)),
		Fees:                make([]FeeView, 0, len(s.Fees)),
		RequiredDocuments:   make([]DocumentView, 0, len(s.RequiredDocuments)),
		ProcessSteps:        make([]StepView, 0, len(s.ProcessSteps)),
		FAQs:                faqViews(s.FAQs, lang),
		Tags:                s.Tags,
		OnlineURL:           s.OnlineURL,
		AvailableLanguages:  s.Name.Languages(),
		UpdatedAt:           s.UpdatedAt,
		ProcessingTimeRaw:   s.ProcessingTime,
	}
	for _, c := range s.EligibilityCriteria {
		d.EligibilityCriteria = append(d.EligibilityCriteria, CriterionView{
			CriteriaType:     c.CriteriaType,
			Name:             c.Name.ResolveOr(lang, string(c.CriteriaType)),
			Description:      c.Description.ResolveOr(lang, ""),
			ValidationMethod: c.ValidationMethod,
			MinValue:         c.MinValue,
			MaxValue:         c.MaxValue,
			AllowedValues:    c.AllowedValues,
		})
	}
	for _, f := range s.Fees {
		fv := FeeView{
			FeeType:     f.FeeType,
			Name:        f.Name.ResolveOr(lang, string(f.FeeType)),
			Description: f.Description.ResolveOr(lang, ""),
			Amount:      f.Amount,
			Currency:    f.CurrencyOrDefault(),
		}
		if f.Waiver != nil {
			fv.Waiver = &WaiverView{
				Eligibility: f.Waiver.Eligibility,
				Description: f.Waiver.Description.ResolveOr(lang, ""),
			}
		}
		d.Fees = append(d.Fees, fv)
	}
	for _, r := range s.RequiredDocuments {
		d.RequiredDocuments = append(d.RequiredDocuments, DocumentView{
			DocumentType:     r.DocumentType,
			Name:             r.Name.ResolveOr(lang, string(r.DocumentType)),
			Description:      r.Description.ResolveOr(lang, ""),
			IsMandatory:      r.Mandatory(),
			AllowedFileTypes: r.AllowedFileTypes,
			MaxFileSizeKB:    r.MaxFileSizeKB,
		})
	}
	for _, st := range s.ProcessSteps {
		d.ProcessSteps = append(d.ProcessSteps, StepView{
			StepNumber:        st.StepNumber,
			Title:             st.Title.ResolveOr(lang, ""),
			Description:       st.Description.ResolveOr(lang, ""),
			EstimatedDuration: st.EstimatedDuration,
			IsOnline:          st.IsOnline,
		})
	}
	return d
}
