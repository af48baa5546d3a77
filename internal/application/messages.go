package application

import (
	"presence/internal/domain"
	"presence/internal/ports/output"
)

// RejectionMessage resolves a check-in rejection to its short
// user-facing message for the locale. Each rejection kind has distinct
// wording; unknown errors fall back to a generic failure message.
func RejectionMessage(t output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	code := domain.Code(err)
	if code == "" {
		return t.T(locale, "checkin_failed", nil)
	}
	return t.T(locale, "checkin_"+code, nil)
}
