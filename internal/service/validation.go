package service

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern is deliberately loose: anything with an @ and a dotted domain
// passes. Real verification happens when the confirmation email is sent.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidationError names the offending field so handlers can report it to the
// form without parsing error text.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

func validEmail(field, value string) *ValidationError {
	if !emailPattern.MatchString(value) {
		return &ValidationError{Field: field, Message: "is not a valid email address"}
	}
	return nil
}
