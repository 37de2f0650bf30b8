package directory

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	// ErrServiceNotActive rejects evaluation against a service that is not active.
	ErrServiceNotActive = errors.New("service is not active")
	ErrSlugTaken        = errors.New("shortName is already in use")
	// ErrPermanentDeleteDenied means the confirmation token was missing or wrong.
	ErrPermanentDeleteDenied = errors.New("permanent delete confirmation failed")
	// ErrPermanentDeleteDisabled means no confirmation token is configured.
	ErrPermanentDeleteDisabled = errors.New("permanent delete is disabled")
)
