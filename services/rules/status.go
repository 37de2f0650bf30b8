package rules

import (
	"strings"

	"citizenhub/models"
)

type statusTemplate struct {
	title         models.MultilingualText
	message       models.MultilingualText
	nextSteps     []models.MultilingualText
	estimatedTime models.MultilingualText
}

// statusOrder is the order codes are reported in availableStatuses.
var statusOrder = []string{
	"submitted", "under_review", "documents_required", "approved", "rejected", "completed",
}

// Templates interpolate {service} and {processingTime}.
var statusTemplates = map[string]statusTemplate{
	"submitted": {
		title: models.MultilingualText{"en": "Application Submitted", "hi": "आवेदन जमा किया गया"},
		message: models.MultilingualText{
			"en": "Your application for {service} has been submitted successfully.",
			"hi": "{service} के लिए आपका आवेदन सफलतापूर्वक जमा हो गया है।",
		},
		nextSteps: []models.MultilingualText{
			{"en": "Keep your application reference number safe"},
			{"en": "Wait for the department to begin review"},
		},
		estimatedTime: models.MultilingualText{"en": "Review usually starts within {processingTime}"},
	},
	"under_review": {
		title:   models.MultilingualText{"en": "Under Review", "hi": "समीक्षाधीन"},
		message: models.MultilingualText{"en": "Your application for {service} is being reviewed by the department."},
		nextSteps: []models.MultilingualText{
			{"en": "Respond promptly if the department contacts you"},
		},
		estimatedTime: models.MultilingualText{"en": "{processingTime}"},
	},
	"documents_required": {
		title:   models.MultilingualText{"en": "Documents Required", "hi": "दस्तावेज़ आवश्यक"},
		message: models.MultilingualText{"en": "Additional documents are required to process your application for {service}."},
		nextSteps: []models.MultilingualText{
			{"en": "Check the list of requested documents"},
			{"en": "Upload the documents before the deadline"},
		},
		estimatedTime: models.MultilingualText{"en": "Processing resumes once documents are received"},
	},
	"approved": {
		title:   models.MultilingualText{"en": "Application Approved", "hi": "आवेदन स्वीकृत"},
		message: models.MultilingualText{"en": "Your application for {service} has been approved."},
		nextSteps: []models.MultilingualText{
			{"en": "Pay any outstanding fees"},
			{"en": "Collect or download your certificate"},
		},
		estimatedTime: models.MultilingualText{"en": "Issued within 1-3 days"},
	},
	"rejected": {
		title:   models.MultilingualText{"en": "Application Rejected", "hi": "आवेदन अस्वीकृत"},
		message: models.MultilingualText{"en": "Your application for {service} could not be approved."},
		nextSteps: []models.MultilingualText{
			{"en": "Read the rejection reason"},
			{"en": "Correct the issues and apply again"},
		},
	},
	"completed": {
		title:   models.MultilingualText{"en": "Completed", "hi": "पूर्ण"},
		message: models.MultilingualText{"en": "Your application for {service} is complete."},
	},
}

// StatusCodes lists every known application status code.
func StatusCodes() []string {
	out := make([]string, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// StatusInfo renders the template for code. Unknown codes return Valid=false
// with the list of known codes.
func StatusInfo(code, serviceName string, pt *models.ProcessingTime, lang string) models.StatusInfo {
	code = strings.ToLower(strings.TrimSpace(code))
	tpl, ok := statusTemplates[code]
	if !ok {
		return models.StatusInfo{Valid: false, AvailableStatuses: StatusCodes()}
	}

	processing := "the standard processing time"
	if pt != nil && pt.String() != "" {
		processing = pt.String()
	}
	r := strings.NewReplacer("{service}", serviceName, "{processingTime}", processing)

	info := models.StatusInfo{
		Valid:         true,
		Status:        code,
		Title:         tpl.title.ResolveOr(lang, code),
		Message:       r.Replace(tpl.message.ResolveOr(lang, "")),
		EstimatedTime: r.Replace(tpl.estimatedTime.ResolveOr(lang, "")),
	}
	for _, step := range tpl.nextSteps {
		info.NextSteps = append(info.NextSteps, r.Replace(step.ResolveOr(lang, "")))
	}
	return info
}
