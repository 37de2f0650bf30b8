package rules

import (
	"strings"

	"citizenhub/models"
)

const (
	msgDocumentsOK      = "All documents validated successfully"
	msgMissingMandatory = "Missing mandatory documents"
	msgDocumentsFailed  = "Some documents failed validation"
	reasonNotRequired   = "Document type not required for this service"
)

// ValidateDocuments checks submitted against requirements. Missing mandatory
// documents, disallowed file types and oversized files make the result
// invalid.
func (e *Engine) ValidateDocuments(requirements []models.DocumentRequirement, submitted []models.SubmittedDocument, lang string) models.DocumentValidation {
	result := models.DocumentValidation{
		Valid:            true,
		ValidDocuments:   []models.ValidDocument{},
		InvalidDocuments: []models.InvalidDocument{},
		MissingMandatory: []models.MissingDocument{},
	}

	present := make(map[models.DocumentType]bool, len(submitted))
	for _, doc := range submitted {
		present[normalizeDocType(doc.Type)] = true
	}
	for _, req := range requirements {
		if req.Mandatory() && !present[req.DocumentType] {
			result.MissingMandatory = append(result.MissingMandatory, models.MissingDocument{
				Type: req.DocumentType,
				Name: req.Name.ResolveOr(lang, string(req.DocumentType)),
			})
			result.Valid = false
		}
	}

	failed := false
	for _, doc := range submitted {
		docType := normalizeDocType(doc.Type)
		req, ok := findRequirement(requirements, docType)
		if !ok {
			// Recorded as invalid but does not fail the submission on its own.
			// This mirrors long-standing behaviour; product has not confirmed
			// whether extra documents should be rejected outright.
			result.InvalidDocuments = append(result.InvalidDocuments, models.InvalidDocument{
				Type:   docType,
				File:   doc.File,
				Reason: reasonNotRequired,
			})
			continue
		}

		if len(req.AllowedFileTypes) > 0 && !allowedExtension(req.AllowedFileTypes, doc.File) {
			result.InvalidDocuments = append(result.InvalidDocuments, models.InvalidDocument{
				Type:   docType,
				File:   doc.File,
				Reason: "File type not allowed. Allowed types: " + strings.Join(req.AllowedFileTypes, ", "),
			})
			result.Valid = false
			failed = true
			continue
		}
		if req.MaxFileSizeKB != nil && doc.SizeKB > *req.MaxFileSizeKB {
			result.InvalidDocuments = append(result.InvalidDocuments, models.InvalidDocument{
				Type:   docType,
				File:   doc.File,
				Reason: "File size exceeds maximum of " + formatNumber(*req.MaxFileSizeKB) + " KB",
			})
			result.Valid = false
			failed = true
			continue
		}

		result.ValidDocuments = append(result.ValidDocuments, models.ValidDocument{
			Type: docType,
			File: doc.File,
			Name: req.Name.ResolveOr(lang, string(req.DocumentType)),
		})
	}

	switch {
	case len(result.MissingMandatory) > 0:
		result.Message = msgMissingMandatory
	case failed:
		result.Message = msgDocumentsFailed
	default:
		result.Message = msgDocumentsOK
	}
	return result
}

func normalizeDocType(t models.DocumentType) models.DocumentType {
	return models.DocumentType(strings.ToLower(strings.TrimSpace(string(t))))
}

func findRequirement(reqs []models.DocumentRequirement, t models.DocumentType) (models.DocumentRequirement, bool) {
	for _, r := range reqs {
		if r.DocumentType == t {
			return r, true
		}
	}
	return models.DocumentRequirement{}, false
}

// fileExtension is the text after the last dot, lower-cased. A name with no
// dot has no extension.
func fileExtension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

func allowedExtension(allowed []string, file string) bool {
	ext := fileExtension(file)
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}
