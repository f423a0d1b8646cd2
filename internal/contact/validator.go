package contact

import (
	"errors"
	"regexp"
	"strings"
)

// Validation failure messages, surfaced verbatim in 400 responses. The
// same messages are shown by the site's form, so wording changes here are
// user-visible.
var (
	ErrNameRequired    = errors.New("fullName is required")
	ErrEmailRequired   = errors.New("email is required")
	ErrSubjectRequired = errors.New("subject is required")
	ErrMessageRequired = errors.New("message is required")
	ErrEmailInvalid    = errors.New("please enter a valid email address")
	ErrNameTooShort    = errors.New("name should be at least 2 characters")
	ErrSubjectTooShort = errors.New("subject should be at least 5 characters")
	ErrMessageTooShort = errors.New("message should be at least 10 characters")
)

// emailPattern is intentionally loose: something@something.something with
// no whitespace or extra @ inside each part. It is not an RFC 5322
// validator and must stay in sync with the form's client-side check.
var emailPattern = regexp.MustCompile(`[^\s@]+@[^\s@]+\.[^\s@]+`)

// Validate checks the candidate fields and returns the first violated rule.
// Rules are checked in a fixed order: presence of each field (name, email,
// subject, message), then email format, then minimum trimmed lengths
// (name 2, subject 5, message 10). Returns nil when all rules pass.
func Validate(f Fields) error {
	if f.FullName == "" {
		return ErrNameRequired
	}
	if f.Email == "" {
		return ErrEmailRequired
	}
	if f.Subject == "" {
		return ErrSubjectRequired
	}
	if f.Message == "" {
		return ErrMessageRequired
	}
	if !emailPattern.MatchString(f.Email) {
		return ErrEmailInvalid
	}
	if len(strings.TrimSpace(f.FullName)) < 2 {
		return ErrNameTooShort
	}
	if len(strings.TrimSpace(f.Subject)) < 5 {
		return ErrSubjectTooShort
	}
	if len(strings.TrimSpace(f.Message)) < 10 {
		return ErrMessageTooShort
	}
	return nil
}
