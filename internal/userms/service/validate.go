package service

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
)

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return &ValidationError{Field: "name", Message: "must be at least 3 characters"}
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return &ValidationError{Field: "name", Message: "must contain only letters and spaces"}
		}
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Message: "must be 10 to 15 digits"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return &ValidationError{Field: "password", Message: "must be at least 6 characters"}
	}
	hasDigit := false
	for _, r := range password {
		if unicode.IsDigit(r) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return &ValidationError{Field: "password", Message: "must contain at least one digit"}
	}
	return nil
}

func validatePincode(pincode string) error {
	if pincode == "" {
		return &ValidationError{Field: "pincode", Message: "is required"}
	}
	if len(pincode) < 4 || len(pincode) > 10 {
		return &ValidationError{Field: "pincode", Message: "must be 4 to 10 characters"}
	}
	return nil
}

func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}
