package models

import "strings"

type DocumentType string

const (
	DocAadhar                 DocumentType = "aadhar"
	DocPAN                    DocumentType = "pan"
	DocVoterID                DocumentType = "voter_id"
	DocPassport               DocumentType = "passport"
	DocDrivingLicense         DocumentType = "driving_license"
	DocRationCard             DocumentType = "ration_card"
	DocIncomeCertificate      DocumentType = "income_certificate"
	DocCasteCertificate       DocumentType = "caste_certificate"
	DocDomicileCertificate    DocumentType = "domicile_certificate"
	DocBirthCertificate       DocumentType = "birth_certificate"
	DocEducationalCertificate DocumentType = "educational_certificate"
	DocDisabilityCertificate  DocumentType = "disability_certificate"
	DocBankPassbook           DocumentType = "bank_passbook"
	DocPhoto                  DocumentType = "photo"
	DocSignature              DocumentType = "signature"
	DocOther                  DocumentType = "other"
)

var DocumentTypes = []DocumentType{
	DocAadhar, DocPAN, DocVoterID, DocPassport, DocDrivingLicense, DocRationCard,
	DocIncomeCertificate, DocCasteCertificate, DocDomicileCertificate, DocBirthCertificate,
	DocEducationalCertificate, DocDisabilityCertificate, DocBankPassbook, DocPhoto,
	DocSignature, DocOther,
}

func (d DocumentType) IsValid() bool {
	for _, v := range DocumentTypes {
		if d == v {
			return true
		}
	}
	return false
}

// DocumentRequirement describes one document a service asks for.
type DocumentRequirement struct {
	DocumentType DocumentType     `bson:"documentType" json:"documentType"`
	Name         MultilingualText `bson:"name" json:"name"`
	Description  MultilingualText `bson:"description,omitempty" json:"description,omitempty"`
	// IsMandatory is a pointer so an omitted value can default to true.
	IsMandatory      *bool    `bson:"isMandatory" json:"isMandatory"`
	AllowedFileTypes []string `bson:"allowedFileTypes,omitempty" json:"allowedFileTypes,omitempty"`
	MaxFileSizeKB    *float64 `bson:"maxFileSizeKB,omitempty" json:"maxFileSizeKB,omitempty"`
}

// Mandatory reports whether the document must be submitted; unset means true.
func (d DocumentRequirement) Mandatory() bool {
	return d.IsMandatory == nil || *d.IsMandatory
}

func (d *DocumentRequirement) normalize() {
	if d.IsMandatory == nil {
		t := true
		d.IsMandatory = &t
	}
	out := d.AllowedFileTypes[:0]
	for _, ext := range d.AllowedFileTypes {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			out = append(out, ext)
		}
	}
	d.AllowedFileTypes = out
}

func (d *DocumentRequirement) validate(errs *ValidationErrors, field string) {
	if !d.DocumentType.IsValid() {
		errs.Addf(field+".documentType", "unknown document type %q", d.DocumentType)
	}
	d.Name.validate(errs, field+".name", true)
	d.Description.validate(errs, field+".description", false)
	if d.MaxFileSizeKB != nil && *d.MaxFileSizeKB <= 0 {
		errs.Add(field+".maxFileSizeKB", "maxFileSizeKB must be positive")
	}
}

// SubmittedDocument is a document an applicant presents for validation.
type SubmittedDocument struct {
	Type   DocumentType `json:"type" binding:"required"`
	File   string       `json:"file" binding:"required"`
	SizeKB float64      `json:"sizeKB" binding:"gte=0"`
}
