package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	serviceRepo "citizenhub/database/repository/service"
	"citizenhub/models"
	"citizenhub/services/rules"
)

type DirectorySuite struct {
	suite.Suite
	repo *serviceRepo.InMemory
	svc  *DefaultDirectoryService
	ctx  context.Context
	now  time.Time
}

func TestDirectorySuite(t *testing.T) {
	suite.Run(t, new(DirectorySuite))
}

func (s *DirectorySuite) SetupTest() {
	s.now = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	engine := rules.NewEngine(rules.DefaultFeeAdjustments())
	engine.Now = func() time.Time { return s.now }

	s.repo = serviceRepo.NewInMemory()
	s.svc = NewDirectoryService(s.repo, engine, nil, "let-me-delete")
	s.svc.Now = func() time.Time { return s.now }
	s.ctx = context.Background()
}

func (s *DirectorySuite) draft(slug string, status models.ServiceStatus) models.ServiceDraft {
	min18 := 18.0
	return models.ServiceDraft{
		ShortName:   slug,
		Name:        models.MultilingualText{"en": "Service " + slug, "hi": "सेवा " + slug},
		Description: models.MultilingualText{"en": "About " + slug},
		Category:    models.CategoryWelfare,
		Status:      status,
		EligibilityCriteria: []models.EligibilityCriterion{{
			CriteriaType:     models.CriteriaAge,
			Name:             models.MultilingualText{"en": "Adult"},
			MinValue:         &min18,
			ValidationMethod: models.MethodMinimum,
		}},
		Fees: []models.FeeRule{{
			FeeType: models.FeeApplication,
			Name:    models.MultilingualText{"en": "Application fee"},
			Amount:  100,
		}},
		RequiredDocuments: []models.DocumentRequirement{{
			DocumentType: models.DocAadhar,
			Name:         models.MultilingualText{"en": "Aadhar card", "hi": "आधार कार्ड"},
		}},
		FAQs: []models.FAQ{{
			Question: models.MultilingualText{"en": "Who can apply?"},
			Answer:   models.MultilingualText{"en": "Adults", "hi": "वयस्क"},
		}},
		ProcessingTime: &models.ProcessingTime{Min: 7, Max: 15, Unit: "days"},
	}
}

func (s *DirectorySuite) create(slug string, status models.ServiceStatus) *models.Service {
	created, err := s.svc.CreateService(s.ctx, s.draft(slug, status), "admin-1")
	s.Require().NoError(err)
	return created
}

func (s *DirectorySuite) TestCreateAndLookup() {
	created := s.create("pension-scheme", models.StatusActive)

	byID, err := s.svc.GetService(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ShortName, byID.ShortName)

	bySlug, err := s.svc.GetService(s.ctx, "PENSION-Scheme")
	s.Require().NoError(err)
	s.Equal(created.ID, bySlug.ID)

	_, err = s.svc.GetService(s.ctx, "missing")
	s.ErrorIs(err, ErrServiceNotFound)
}

func (s *DirectorySuite) TestCreateRejectsDuplicateAndInvalid() {
	s.create("pension-scheme", models.StatusActive)

	_, err := s.svc.CreateService(s.ctx, s.draft("Pension-Scheme", models.StatusDraft), "admin-1")
	s.ErrorIs(err, ErrSlugTaken)

	bad := s.draft("x", models.StatusDraft)
	_, err = s.svc.CreateService(s.ctx, bad, "admin-1")
	var verrs models.ValidationErrors
	s.Require().True(errors.As(err, &verrs))
	s.Contains(verrs.Fields(), "shortName")
}

func (s *DirectorySuite) TestEvaluationRequiresActive() {
	s.create("draft-svc", models.StatusDraft)
	s.create("paused-svc", models.StatusInactive)
	age := 30

	_, err := s.svc.CheckEligibility(s.ctx, "draft-svc", models.UserProfile{Age: &age}, "en")
	s.ErrorIs(err, ErrServiceNotFound)

	_, err = s.svc.CheckEligibility(s.ctx, "paused-svc", models.UserProfile{Age: &age}, "en")
	s.ErrorIs(err, ErrServiceNotActive)

	_, err = s.svc.CalculateFees(s.ctx, "paused-svc", models.UserProfile{}, "en")
	s.ErrorIs(err, ErrServiceNotActive)

	res, err := s.svc.ValidateDocuments(s.ctx, "paused-svc", nil, "en")
	s.Require().NoError(err)
	s.False(res.Valid)
}

func (s *DirectorySuite) TestEvaluations() {
	s.create("pension-scheme", models.StatusActive)
	age := 30

	verdict, err := s.svc.CheckEligibility(s.ctx, "pension-scheme", models.UserProfile{Age: &age}, "en")
	s.Require().NoError(err)
	s.Equal(models.Eligible, verdict.Eligible)

	verdict, err = s.svc.CheckEligibility(s.ctx, "pension-scheme", models.UserProfile{}, "en")
	s.Require().NoError(err)
	s.Equal(models.EligibilityUnknown, verdict.Eligible)

	fees, err := s.svc.CalculateFees(s.ctx, "pension-scheme", models.UserProfile{}, "en")
	s.Require().NoError(err)
	s.InDelta(100, fees.TotalAmount, 0.0001)

	docs, err := s.svc.ValidateDocuments(s.ctx, "pension-scheme", []models.SubmittedDocument{
		{Type: models.DocAadhar, File: "a.pdf", SizeKB: 10},
	}, "hi")
	s.Require().NoError(err)
	s.True(docs.Valid)
	s.Equal("आधार कार्ड", docs.ValidDocuments[0].Name)
}

func (s *DirectorySuite) TestDetailsFAQsAndStatus() {
	created := s.create("pension-scheme", models.StatusActive)

	d, err := s.svc.GetServiceDetails(s.ctx, "pension-scheme", "hi")
	s.Require().NoError(err)
	s.Equal("सेवा pension-scheme", d.Name)
	s.Equal("About pension-scheme", d.Description)
	s.Equal("hi", d.Language)
	s.Equal("7-15 days", d.ProcessingTime)
	s.True(d.RequiredDocuments[0].IsMandatory)
	s.Equal([]string{"en", "hi"}, d.AvailableLanguages)

	_, err = s.svc.GetServiceDetails(s.ctx, created.ID, "xx")
	s.Require().NoError(err)
	stored, err := s.repo.GetByIDOrSlug(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), stored.Stats.Views)

	faqs, err := s.svc.FAQs(s.ctx, "pension-scheme", "hi")
	s.Require().NoError(err)
	s.Equal([]FAQView{{Question: "Who can apply?", Answer: "वयस्क"}}, faqs)

	info, err := s.svc.StatusInfo(s.ctx, "pension-scheme", "approved", "en")
	s.Require().NoError(err)
	s.True(info.Valid)
	s.Equal("Your application for Service pension-scheme has been approved.", info.Message)

	info, err = s.svc.StatusInfo(s.ctx, "pension-scheme", "lost", "en")
	s.Require().NoError(err)
	s.False(info.Valid)
	s.NotEmpty(info.AvailableStatuses)
}

func (s *DirectorySuite) TestListServices() {
	s.create("alpha", models.StatusActive)
	s.now = s.now.Add(time.Minute)
	s.create("beta", models.StatusActive)
	s.create("gamma", models.StatusDraft)

	list, err := s.svc.ListServices(s.ctx, ListQuery{})
	s.Require().NoError(err)
	s.Len(list.Services, 2)
	s.Equal("beta", list.Services[0].ShortName)
	s.Equal(models.Page{Page: 1, Limit: 20, Total: 2, TotalPages: 1}, list.Pagination)

	list, err = s.svc.ListServices(s.ctx, ListQuery{Admin: true, Limit: 1000})
	s.Require().NoError(err)
	s.Len(list.Services, 3)
	s.Equal(100, list.Pagination.Limit)

	list, err = s.svc.ListServices(s.ctx, ListQuery{Query: "ALP", Lang: "hi"})
	s.Require().NoError(err)
	s.Require().Len(list.Services, 1)
	s.Equal("सेवा alpha", list.Services[0].Name)

	_, err = s.svc.ListServices(s.ctx, ListQuery{Category: "spaceflight"})
	var verrs models.ValidationErrors
	s.True(errors.As(err, &verrs))
}

func (s *DirectorySuite) TestCategoryCounts() {
	s.create("alpha", models.StatusActive)
	s.create("beta", models.StatusActive)
	s.create("gamma", models.StatusInactive)

	counts, err := s.svc.CategoryCounts(s.ctx)
	s.Require().NoError(err)
	s.Len(counts, len(models.ServiceCategories))
	s.Equal(CategoryCount{Category: models.CategoryWelfare, Count: 2}, counts[0])
}

func (s *DirectorySuite) TestUpdateAndStatusLifecycle() {
	created := s.create("pension-scheme", models.StatusDraft)

	tags := []string{"Senior", "pension"}
	updated, err := s.svc.UpdateService(s.ctx, "pension-scheme", models.ServiceUpdate{Tags: &tags}, "admin-2")
	s.Require().NoError(err)
	s.Equal([]string{"senior", "pension"}, updated.Tags)
	s.Equal("admin-2", updated.UpdatedBy)

	active, err := s.svc.ChangeStatus(s.ctx, created.ID, models.StatusActive, "admin-2")
	s.Require().NoError(err)
	s.True(active.IsActive())

	dep, err := s.svc.DeprecateService(s.ctx, created.ID, "admin-2")
	s.Require().NoError(err)
	s.Equal(models.StatusDeprecated, dep.Status)
	s.NotNil(dep.DeprecatedAt)

	stored, err := s.svc.GetService(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusDeprecated, stored.Status)
}

func (s *DirectorySuite) TestBatchChangeStatus() {
	a := s.create("alpha", models.StatusDraft)
	b := s.create("beta", models.StatusDraft)

	n, err := s.svc.BatchChangeStatus(s.ctx, []string{a.ID, b.ID, a.ID}, models.StatusActive, "admin-1")
	s.Require().NoError(err)
	s.Equal(2, n)

	_, err = s.svc.BatchChangeStatus(s.ctx, []string{a.ID, "nope"}, models.StatusInactive, "admin-1")
	s.ErrorIs(err, ErrServiceNotFound)
	stored, _ := s.svc.GetService(s.ctx, a.ID)
	s.Equal(models.StatusActive, stored.Status)

	_, err = s.svc.BatchChangeStatus(s.ctx, nil, "archived", "admin-1")
	var verrs models.ValidationErrors
	s.Require().True(errors.As(err, &verrs))
	s.Contains(verrs.Fields(), "ids")
	s.Contains(verrs.Fields(), "status")
}

func (s *DirectorySuite) TestPermanentDelete() {
	created := s.create("pension-scheme", models.StatusActive)

	s.ErrorIs(s.svc.PermanentlyDeleteService(s.ctx, created.ID, ""), ErrPermanentDeleteDenied)
	s.ErrorIs(s.svc.PermanentlyDeleteService(s.ctx, created.ID, "wrong"), ErrPermanentDeleteDenied)
	s.Require().NoError(s.svc.PermanentlyDeleteService(s.ctx, created.ID, "let-me-delete"))

	_, err := s.svc.GetService(s.ctx, created.ID)
	s.ErrorIs(err, ErrServiceNotFound)

	s.svc.DeleteToken = ""
	s.ErrorIs(s.svc.PermanentlyDeleteService(s.ctx, "anything", "x"), ErrPermanentDeleteDisabled)
}
