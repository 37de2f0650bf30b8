package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	now time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) draft() ServiceDraft {
	min18 := 18.0
	return ServiceDraft{
		ShortName:   " Birth-Certificate ",
		Name:        MultilingualText{"en": "Birth Certificate", "hi": "जन्म प्रमाण पत्र"},
		Description: MultilingualText{"en": "Register a birth"},
		Category:    CategoryCertificates,
		EligibilityCriteria: []EligibilityCriterion{{
			CriteriaType:     CriteriaAge,
			Name:             MultilingualText{"en": "Adult"},
			MinValue:         &min18,
			ValidationMethod: MethodMinimum,
			AllowedValues:    []string{" a ", "a", ""},
		}},
		Fees: []FeeRule{{
			FeeType: FeeApplication,
			Name:    MultilingualText{"en": "Application"},
			Amount:  50,
			Waiver:  &FeeWaiver{Eligibility: []WaiverCategory{"BPL"}},
		}},
		RequiredDocuments: []DocumentRequirement{{
			DocumentType:     DocAadhar,
			Name:             MultilingualText{"en": "Aadhar"},
			AllowedFileTypes: []string{".PDF", "jpg"},
		}},
		ProcessSteps: []ProcessStep{{StepNumber: 1, Title: MultilingualText{"en": "Apply"}}},
	}
}

func (s *ServiceSuite) validationFields(err error) map[string]string {
	var verrs ValidationErrors
	s.Require().True(errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
	return verrs.Fields()
}

func (s *ServiceSuite) TestNewServiceDefaultsAndNormalizes() {
	svc, err := NewService(s.draft(), "admin-1", s.now)
	s.Require().NoError(err)
	s.NotEmpty(svc.ID)
	s.Equal("birth-certificate", svc.ShortName)
	s.Equal(StatusDraft, svc.Status)
	s.Equal(JurisdictionCentral, svc.Jurisdiction)
	s.Equal("INR", svc.Fees[0].Currency)
	s.Equal(WaiverBPL, svc.Fees[0].Waiver.Eligibility[0])
	s.True(svc.RequiredDocuments[0].Mandatory())
	s.Equal([]string{"pdf", "jpg"}, svc.RequiredDocuments[0].AllowedFileTypes)
	s.Equal([]string{"a"}, svc.EligibilityCriteria[0].AllowedValues)
	s.NotNil(svc.FAQs)
	s.Equal("admin-1", svc.CreatedBy)
}

func (s *ServiceSuite) TestNewServiceRejectsInvalid() {
	s.Run("criterion thresholds", func() {
		d := s.draft()
		d.EligibilityCriteria = []EligibilityCriterion{
			{CriteriaType: CriteriaIncome, Name: MultilingualText{"en": "Income"}, ValidationMethod: MethodRange},
			{CriteriaType: CriteriaCategory, Name: MultilingualText{"en": "Cat"}, ValidationMethod: MethodList},
			{CriteriaType: "height", Name: MultilingualText{"en": "Tall"}, ValidationMethod: MethodBoolean},
		}
		_, err := NewService(d, "a", s.now)
		fields := s.validationFields(err)
		s.Contains(fields, "eligibilityCriteria[0].minValue")
		s.Contains(fields, "eligibilityCriteria[1].allowedValues")
		s.Contains(fields, "eligibilityCriteria[2].criteriaType")
	})

	s.Run("slug and english text", func() {
		d := s.draft()
		d.ShortName = "no spaces allowed"
		d.Name = MultilingualText{"hi": "नाम"}
		_, err := NewService(d, "a", s.now)
		fields := s.validationFields(err)
		s.Contains(fields, "shortName")
		s.Contains(fields, "name.en")
	})

	s.Run("negative fee and duplicate step", func() {
		d := s.draft()
		d.Fees[0].Amount = -1
		d.ProcessSteps = append(d.ProcessSteps, ProcessStep{StepNumber: 1, Title: MultilingualText{"en": "Again"}})
		_, err := NewService(d, "a", s.now)
		fields := s.validationFields(err)
		s.Contains(fields, "fees[0].amount")
		s.Contains(fields, "processSteps[1].stepNumber")
	})
}

func (s *ServiceSuite) TestApplyUpdate() {
	svc, err := NewService(s.draft(), "admin-1", s.now)
	s.Require().NoError(err)

	later := s.now.Add(time.Hour)
	category := CategoryWelfare
	next, err := svc.ApplyUpdate(ServiceUpdate{Category: &category}, "admin-2", later)
	s.Require().NoError(err)
	s.Equal(CategoryWelfare, next.Category)
	s.Equal(CategoryCertificates, svc.Category)
	s.Equal("admin-2", next.UpdatedBy)
	s.Equal(later, next.UpdatedAt)

	slug := "other-slug"
	_, err = svc.ApplyUpdate(ServiceUpdate{ShortName: &slug}, "admin-2", later)
	s.Contains(s.validationFields(err), "shortName")

	same := "BIRTH-CERTIFICATE"
	_, err = svc.ApplyUpdate(ServiceUpdate{ShortName: &same}, "admin-2", later)
	s.NoError(err)

	// Values not yet normalized on the receiver must survive the update untouched.
	svc.Tags = []string{" Birth "}
	svc.EligibilityCriteria[0].AllowedValues = []string{" b ", "b"}
	svc.Fees[0].VariableFactors = []VariableFactor{{Factor: " Income "}}
	svc.RequiredDocuments[0].AllowedFileTypes = []string{".PDF"}
	next, err = svc.ApplyUpdate(ServiceUpdate{Category: &category}, "admin-2", later)
	s.Require().NoError(err)
	s.Equal([]string{"birth"}, next.Tags)
	s.Equal([]string{" Birth "}, svc.Tags)
	s.Equal([]string{"b"}, next.EligibilityCriteria[0].AllowedValues)
	s.Equal([]string{" b ", "b"}, svc.EligibilityCriteria[0].AllowedValues)
	s.Equal("income", next.Fees[0].VariableFactors[0].Factor)
	s.Equal(" Income ", svc.Fees[0].VariableFactors[0].Factor)
	s.Equal([]string{"pdf"}, next.RequiredDocuments[0].AllowedFileTypes)
	s.Equal([]string{".PDF"}, svc.RequiredDocuments[0].AllowedFileTypes)

	bad := []FeeRule{{FeeType: "bribe", Name: MultilingualText{"en": "x"}}}
	_, err = svc.ApplyUpdate(ServiceUpdate{Fees: &bad}, "admin-2", later)
	s.Contains(s.validationFields(err), "fees[0].feeType")
}

func (s *ServiceSuite) TestWithStatus() {
	svc, err := NewService(s.draft(), "admin-1", s.now)
	s.Require().NoError(err)

	dep, err := svc.WithStatus(StatusDeprecated, "admin-1", s.now)
	s.Require().NoError(err)
	s.NotNil(dep.DeprecatedAt)
	s.False(dep.IsActive())

	active, err := dep.WithStatus(StatusActive, "admin-1", s.now)
	s.Require().NoError(err)
	s.Nil(active.DeprecatedAt)
	s.True(active.IsActive())

	_, err = svc.WithStatus("archived", "admin-1", s.now)
	s.Error(err)
}

func (s *ServiceSuite) TestProcessingTimeString() {
	s.Equal("7-15 days", ProcessingTime{Min: 7, Max: 15, Unit: "days"}.String())
	s.Equal("3 weeks", ProcessingTime{Min: 3, Max: 3, Unit: "weeks"}.String())
	s.Equal("", ProcessingTime{}.String())
}

func (s *ServiceSuite) TestEligibilityJSON() {
	for _, tc := range []struct {
		in   Eligibility
		want string
	}{{Eligible, "true"}, {NotEligible, "false"}, {EligibilityUnknown, `"unknown"`}} {
		raw, err := tc.in.MarshalJSON()
		s.Require().NoError(err)
		s.Equal(tc.want, string(raw))

		var back Eligibility
		s.Require().NoError(back.UnmarshalJSON(raw))
		s.Equal(tc.in, back)
	}
}
