package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() Fields {
	return Fields{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Subject:  "Hello there",
		Message:  "I would like to discuss a project with you.",
	}
}

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, Validate(validFields()))
}

func TestValidateMissingFieldPrecedence(t *testing.T) {
	// When several fields are missing, the first in documented order wins.
	assert.ErrorIs(t, Validate(Fields{}), ErrNameRequired)

	f := validFields()
	f.Email = ""
	f.Subject = ""
	f.Message = ""
	assert.ErrorIs(t, Validate(f), ErrEmailRequired)

	f = validFields()
	f.Subject = ""
	f.Message = ""
	assert.ErrorIs(t, Validate(f), ErrSubjectRequired)

	f = validFields()
	f.Message = ""
	assert.ErrorIs(t, Validate(f), ErrMessageRequired)
}

func TestValidateEmailFormat(t *testing.T) {
	bad := []string{
		"plainaddress",
		"@no-local-part.com",
		"no-at-sign.com",
		"no-domain@",
		"nodot@domain",
	}
	for _, email := range bad {
		f := validFields()
		f.Email = email
		assert.ErrorIs(t, Validate(f), ErrEmailInvalid, "email %q", email)
	}

	good := []string{
		"jane@example.com",
		"jane.doe+tag@sub.example.co.uk",
		// The pattern is unanchored on purpose; surrounding text still
		// matches as long as a well-shaped address appears somewhere.
		"weird but contains jane@example.com inside",
	}
	for _, email := range good {
		f := validFields()
		f.Email = email
		assert.NoError(t, Validate(f), "email %q", email)
	}
}

func TestValidateMinLengths(t *testing.T) {
	f := validFields()
	f.FullName = " J "
	assert.ErrorIs(t, Validate(f), ErrNameTooShort)

	f = validFields()
	f.Subject = "Hey "
	assert.ErrorIs(t, Validate(f), ErrSubjectTooShort)

	f = validFields()
	f.Message = "too short"
	assert.ErrorIs(t, Validate(f), ErrMessageTooShort)

	// Exactly at the minimum after trimming passes.
	f = validFields()
	f.FullName = "Jo"
	f.Subject = "Hello"
	f.Message = "1234567890"
	assert.NoError(t, Validate(f))
}

func TestValidateFormatBeforeLength(t *testing.T) {
	// Malformed email is reported before the short-name rule.
	f := Fields{FullName: "J", Email: "nope", Subject: "Hi", Message: "short"}
	assert.ErrorIs(t, Validate(f), ErrEmailInvalid)
}

func TestIsSpam(t *testing.T) {
	f := validFields()
	assert.False(t, IsSpam(f))

	f.Message = "Visit our CASINO for great deals"
	assert.True(t, IsSpam(f))

	f = validFields()
	f.Subject = "You are a winner"
	assert.True(t, IsSpam(f))

	f = validFields()
	f.FullName = "Lottery Bot"
	assert.True(t, IsSpam(f))
}
