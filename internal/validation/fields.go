package validation

import (
	"strconv"
	"strings"
)

// bcrypt ignores everything after 72 bytes, so longer passwords are refused.
const (
	minPasswordLength = 12
	maxPasswordLength = 72
)

var commonPasswordParts = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// field checks a single value against validator tags and reports failures
// as a *FieldError named field.
func field(name string, value any, tags string) error {
	err := validate.Var(value, tags)
	if err == nil {
		return nil
	}
	return firstFieldError(err, name)
}

// ValidateEmail checks an already normalized address (RFC 5321 length limit).
func ValidateEmail(email string) error {
	return field("email", email, "required,max=254,email")
}

// ValidateName checks a trimmed display name.
func ValidateName(name string) error {
	return field("name", name, "required,max=100")
}

// ValidatePassword enforces length limits and rejects common patterns.
func ValidatePassword(password string) error {
	if len(password) > maxPasswordLength {
		return &FieldError{Field: "password", Rule: "max", Param: strconv.Itoa(maxPasswordLength)}
	}
	err := field("password", password, "required,min="+strconv.Itoa(minPasswordLength))
	if err != nil {
		return err
	}

	lower := strings.ToLower(password)
	for _, part := range commonPasswordParts {
		if strings.Contains(lower, part) {
			return &FieldError{Field: "password", Rule: "common"}
		}
	}
	return nil
}
