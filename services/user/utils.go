package user

import (
	"fmt"
	"regexp"
	"strings"

	"citizenhub/config"
	"citizenhub/models"
)

var (
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	numberPattern = regexp.MustCompile(`[0-9]`)
)

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !upperPattern.MatchString(pw) {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !lowerPattern.MatchString(pw) {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !numberPattern.MatchString(pw) {
		return fmt.Errorf("password must include at least one number")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// roleFor grants admin to addresses listed in ADMIN_EMAILS.
func roleFor(email string) string {
	for _, admin := range strings.Split(config.AppConfig.AdminEmails, ",") {
		if normalizeEmail(admin) != "" && normalizeEmail(admin) == email {
			return models.RoleAdmin
		}
	}
	return models.RoleCitizen
}
