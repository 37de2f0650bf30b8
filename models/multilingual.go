package models

import (
	"sort"
	"strings"
)

// DefaultLanguage is the mandatory language of every required text field and
// the fallback for every lookup.
const DefaultLanguage = "en"

// SupportedLanguages lists the accepted language codes.
var SupportedLanguages = []string{
	"en", "hi", "bn", "te", "mr", "ta",
	"gu", "kn", "ml", "or", "pa", "as",
}

var supportedLanguageSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(SupportedLanguages))
	for _, code := range SupportedLanguages {
		set[code] = struct{}{}
	}
	return set
}()

// IsSupportedLanguage reports whether code is one of SupportedLanguages.
func IsSupportedLanguage(code string) bool {
	_, ok := supportedLanguageSet[code]
	return ok
}

// NormalizeLanguage lower-cases code and maps anything unsupported to DefaultLanguage.
func NormalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if IsSupportedLanguage(code) {
		return code
	}
	return DefaultLanguage
}

// MultilingualText maps a language code to its text.
type MultilingualText map[string]string

// Resolve returns the text for lang, falling back to English. The boolean is
// false when neither is present.
func (m MultilingualText) Resolve(lang string) (string, bool) {
	if v, ok := m[lang]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	if v, ok := m[DefaultLanguage]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return "", false
}

// ResolveOr is Resolve with a default for display code.
func (m MultilingualText) ResolveOr(lang, fallback string) string {
	if v, ok := m.Resolve(lang); ok {
		return v
	}
	return fallback
}

// Languages returns the codes that carry non-blank text, sorted.
func (m MultilingualText) Languages() []string {
	out := make([]string, 0, len(m))
	for code, v := range m {
		if strings.TrimSpace(v) != "" {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}

// validate appends problems with m to errs under field. A required field
// must carry English text.
func (m MultilingualText) validate(errs *ValidationErrors, field string, required bool) {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if !IsSupportedLanguage(code) {
			errs.Add(field+"."+code, "unsupported language code")
		}
	}
	if required {
		if v, ok := m[DefaultLanguage]; !ok || strings.TrimSpace(v) == "" {
			errs.Add(field+"."+DefaultLanguage, "English text is required")
		}
	}
}
