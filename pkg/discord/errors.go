package discord

import "bluebrain/internal/domain"

// GenericErrorKey is the message shown for errors without a domain code.
const GenericErrorKey = "error.generic"

// DomainErrorKey maps err to the locale key of its user-facing message.
// It returns "" when err carries no domain code.
func DomainErrorKey(err error) string {
	if err == nil {
		return ""
	}
	if code := domain.Code(err); code != "" {
		return "error." + code
	}
	return ""
}
