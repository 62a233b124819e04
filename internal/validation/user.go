package validation

import (
	"strings"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// Minimum password length for registration.
const MinPasswordLength = 6

// Violation messages for user payloads.
const (
	MsgInvalidEmail          = "Valid email is required"
	MsgRegistrationPassword  = "Password is required and must be at least 6 characters"
	MsgPasswordTooLong       = "Password must be at most 72 bytes"
	MsgLoginPasswordRequired = "Password is required"
)

// CredentialsInput is the raw body of the register and login endpoints.
type CredentialsInput struct {
	Email    Field[string] `json:"email"`
	Password Field[string] `json:"password"`
}

// registrationRules carries the decoded registration values. Lengths are
// measured on the trimmed password; the byte cap applies to what is hashed.
type registrationRules struct {
	Email       string `validate:"required,email_address"`
	Password    string `validate:"required,min=6"`
	RawPassword string `validate:"bcrypt_max"`
}

type loginRules struct {
	Email    string `validate:"required,email_address"`
	Password string `validate:"required"`
}

// Registration is a sanitized registration payload. Password is still
// plaintext; hashing happens downstream.
type Registration struct {
	Email     string
	Password  string
	CreatedAt time.Time
}

// Login is a sanitized login payload.
type Login struct {
	Email    string
	Password string
}

// ValidateRegistration checks the email shape and the password length.
func ValidateRegistration(in CredentialsInput) (Registration, error) {
	rules := &registrationRules{
		Email:       strings.TrimSpace(in.Email.Value),
		Password:    strings.TrimSpace(in.Password.Value),
		RawPassword: in.Password.Value,
	}
	hashable := in.Password.Set && in.Password.Valid
	violations := check(rules, []member{
		memberOf("Email", in.Email, true, MsgInvalidEmail),
		memberOf("Password", in.Password, true, MsgRegistrationPassword),
		{rule: "RawPassword", set: hashable, valid: hashable, message: MsgPasswordTooLong},
	})
	if len(violations) > 0 {
		return Registration{}, domain.NewValidationError(violations...)
	}

	return Registration{
		Email:     domain.NormalizeEmail(in.Email.Value),
		Password:  in.Password.Value,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ValidateLogin checks the email shape and that a password was given.
// The password is passed through untouched.
func ValidateLogin(in CredentialsInput) (Login, error) {
	rules := &loginRules{
		Email:    strings.TrimSpace(in.Email.Value),
		Password: strings.TrimSpace(in.Password.Value),
	}
	violations := check(rules, []member{
		memberOf("Email", in.Email, true, MsgInvalidEmail),
		memberOf("Password", in.Password, true, MsgLoginPasswordRequired),
	})
	if len(violations) > 0 {
		return Login{}, domain.NewValidationError(violations...)
	}

	return Login{
		Email:    domain.NormalizeEmail(in.Email.Value),
		Password: in.Password.Value,
	}, nil
}
