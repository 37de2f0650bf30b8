package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizenhub/models"
)

func requirementFor(t models.DocumentType, mandatory bool, exts []string, maxKB *float64) models.DocumentRequirement {
	return models.DocumentRequirement{
		DocumentType:     t,
		Name:             models.MultilingualText{"en": string(t) + " card"},
		IsMandatory:      &mandatory,
		AllowedFileTypes: exts,
		MaxFileSizeKB:    maxKB,
	}
}

func TestValidateDocuments(t *testing.T) {
	e := fixedEngine(time.Now())
	reqs := []models.DocumentRequirement{
		requirementFor(models.DocAadhar, true, []string{"pdf", "jpg"}, f64(500)),
		requirementFor(models.DocPhoto, false, []string{"jpg"}, nil),
	}

	t.Run("all valid", func(t *testing.T) {
		res := e.ValidateDocuments(reqs, []models.SubmittedDocument{
			{Type: models.DocAadhar, File: "aadhar.PDF", SizeKB: 200},
		}, "en")
		assert.True(t, res.Valid)
		assert.Equal(t, "All documents validated successfully", res.Message)
		require.Len(t, res.ValidDocuments, 1)
		assert.Equal(t, "aadhar card", res.ValidDocuments[0].Name)
	})

	t.Run("missing mandatory fails even if submitted documents pass", func(t *testing.T) {
		res := e.ValidateDocuments(reqs, []models.SubmittedDocument{
			{Type: models.DocPhoto, File: "me.jpg", SizeKB: 10},
		}, "en")
		assert.False(t, res.Valid)
		assert.Equal(t, "Missing mandatory documents", res.Message)
		require.Len(t, res.MissingMandatory, 1)
		assert.Equal(t, models.DocAadhar, res.MissingMandatory[0].Type)
		assert.Len(t, res.ValidDocuments, 1)
	})

	t.Run("wrong extension", func(t *testing.T) {
		res := e.ValidateDocuments(reqs, []models.SubmittedDocument{
			{Type: models.DocAadhar, File: "aadhar.png", SizeKB: 10},
		}, "en")
		assert.False(t, res.Valid)
		assert.Equal(t, "Some documents failed validation", res.Message)
		require.Len(t, res.InvalidDocuments, 1)
		assert.Equal(t, "File type not allowed. Allowed types: pdf, jpg", res.InvalidDocuments[0].Reason)
	})

	t.Run("no extension", func(t *testing.T) {
		res := e.ValidateDocuments(reqs, []models.SubmittedDocument{
			{Type: models.DocAadhar, File: "aadhar", SizeKB: 10},
		}, "en")
		assert.False(t, res.Valid)
	})

	t.Run("too large", func(t *testing.T) {
		res := e.ValidateDocuments(reqs, []models.SubmittedDocument{
			{Type: models.DocAadhar, File: "a.pdf", SizeKB: 501},
		}, "en")
		assert.False(t, res.Valid)
		require.Len(t, res.InvalidDocuments, 1)
		assert.Equal(t, "File size exceeds maximum of 500 KB", res.InvalidDocuments[0].Reason)
	})

	t.Run("unrequired document is informational", func(t *testing.T) {
		res := e.ValidateDocuments(reqs, []models.SubmittedDocument{
			{Type: models.DocAadhar, File: "a.pdf", SizeKB: 1},
			{Type: models.DocPAN, File: "pan.pdf", SizeKB: 1},
		}, "en")
		assert.True(t, res.Valid)
		require.Len(t, res.InvalidDocuments, 1)
		assert.Equal(t, "Document type not required for this service", res.InvalidDocuments[0].Reason)
		assert.Equal(t, "All documents validated successfully", res.Message)
	})

	t.Run("missing outranks failures in message", func(t *testing.T) {
		res := e.ValidateDocuments(reqs, []models.SubmittedDocument{
			{Type: models.DocPhoto, File: "me.png", SizeKB: 1},
		}, "en")
		assert.Equal(t, "Missing mandatory documents", res.Message)
		assert.Len(t, res.InvalidDocuments, 1)
	})
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "pdf", fileExtension("scan.final.PDF"))
	assert.Equal(t, "", fileExtension("scan"))
	assert.Equal(t, "", fileExtension("scan."))
}
