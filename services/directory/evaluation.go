package directory

import (
	"context"
	"strconv"

	"citizenhub/metrics"
	"citizenhub/models"
	"citizenhub/services/rules"
)

// CheckEligibility evaluates an active service's criteria against profile.
func (s *DefaultDirectoryService) CheckEligibility(ctx context.Context, idOrSlug string, profile models.UserProfile, lang string) (*models.EligibilityVerdict, error) {
	svc, err := s.loadActive(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	verdict := s.Engine.CheckEligibility(svc.EligibilityCriteria, profile, models.NormalizeLanguage(lang))
	metrics.EligibilityVerdicts.WithLabelValues(verdict.Eligible.String()).Inc()
	return &verdict, nil
}

// CalculateFees totals an active service's fees for profile.
func (s *DefaultDirectoryService) CalculateFees(ctx context.Context, idOrSlug string, profile models.UserProfile, lang string) (*models.FeeResult, error) {
	svc, err := s.loadActive(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	result := s.Engine.CalculateFees(svc.Fees, profile, models.NormalizeLanguage(lang))
	metrics.FeeCalculations.WithLabelValues(strconv.FormatBool(len(result.Waivers) > 0)).Inc()
	return &result, nil
}

// ValidateDocuments checks docs against the requirements of a published
// service. Unlike the other evaluations it accepts inactive services so
// pending applications can still be checked.
func (s *DefaultDirectoryService) ValidateDocuments(ctx context.Context, idOrSlug string, docs []models.SubmittedDocument, lang string) (*models.DocumentValidation, error) {
	svc, err := s.loadPublic(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	result := s.Engine.ValidateDocuments(svc.RequiredDocuments, docs, models.NormalizeLanguage(lang))
	metrics.DocumentValidations.WithLabelValues(strconv.FormatBool(result.Valid)).Inc()
	return &result, nil
}

// StatusInfo renders the template for an application status code.
func (s *DefaultDirectoryService) StatusInfo(ctx context.Context, idOrSlug, code, lang string) (*models.StatusInfo, error) {
	svc, err := s.loadPublic(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	lang = models.NormalizeLanguage(lang)
	info := rules.StatusInfo(code, svc.Name.ResolveOr(lang, svc.ShortName), svc.ProcessingTime, lang)
	return &info, nil
}
