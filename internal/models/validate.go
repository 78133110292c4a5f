package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/folio/internal/common"
)

// MinPasswordLength is the shortest admin password accepted.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail validates email and returns it trimmed and lowercased.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", common.Invalid("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return "", common.Invalid("Invalid email format")
	}
	return email, nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return common.Invalid("Password is required")
	}
	if len(password) < MinPasswordLength {
		return common.Invalid(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// Required fails when value is blank. The value itself is returned as given.
func Required(value, field string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", common.Invalid(field + " is required")
	}
	return value, nil
}

// Validate checks the fields a visitor must fill and normalizes them.
func (in CommentInput) Validate() (CommentInput, error) {
	var err error
	if in.AuthorName, err = Required(strings.TrimSpace(in.AuthorName), "author_name"); err != nil {
		return in, err
	}
	if in.AuthorEmail, err = NormalizeEmail(in.AuthorEmail); err != nil {
		return in, err
	}
	if in.Content, err = Required(strings.TrimSpace(in.Content), "content"); err != nil {
		return in, err
	}
	return in, nil
}
