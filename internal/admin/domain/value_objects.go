package domain

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/sand-hq/campaign-api/internal/fault"
)

// RequiredText trims value and rejects blanks, naming the field in the error.
func RequiredText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fault.Validationf("%s is required", field)
	}
	return trimmed, nil
}

type Email string

func NewEmail(value string) (Email, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return "", fault.Validation("email is required")
	}
	if len(trimmed) > 254 {
		return "", fault.Validation("email too long")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fault.Validationf("invalid email: %s", trimmed)
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}

// URL accepts bare hosts such as "acme.com" by assuming https.
type URL string

func NewURL(field, value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fault.Validationf("%s is required", field)
	}
	candidate := trimmed
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.ParseRequestURI(candidate)
	if err != nil || parsed.Host == "" {
		return "", fault.Validationf("invalid %s: %s", field, trimmed)
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}

type PhotoURL string

func NewPhotoURL(field, value string) (PhotoURL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fault.Validationf("%s is required", field)
	}
	parsed, err := url.ParseRequestURI(trimmed)
	if err != nil || parsed.Host == "" {
		return "", fault.Validationf("invalid %s: %s", field, trimmed)
	}
	return PhotoURL(trimmed), nil
}

func (u PhotoURL) String() string {
	return string(u)
}
