// Package contact validates the registrant details and purchase parameters
// collected by the interactive flow. Everything here is a pure predicate:
// bad input is reported through the returned error, never panicked on.
package contact

import (
	"fmt"
	"regexp"
	"strings"

	"domainmgr/internal/registrar"
)

const (
	MinYears = 1
	MaxYears = 10
)

var (
	// Minimal shape check; the registrar does the authoritative validation.
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// International format, optional + prefix, 10-15 digits.
	phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// ValidateYears accepts a registration period of 1 to 10 years.
func ValidateYears(years int) error {
	if years < MinYears || years > MaxYears {
		return fmt.Errorf("registration period must be between %d and %d years, got %d", MinYears, MaxYears, years)
	}
	return nil
}

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}

func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("phone number is required")
	}
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("invalid phone number %q (use international format, e.g. +14155550100)", phone)
	}
	return nil
}

func ValidateCountry(code string) error {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 2 {
		return fmt.Errorf("country must be a 2-letter code (e.g. US), got %q", code)
	}
	if _, ok := countryCodes[c]; !ok {
		return fmt.Errorf("unknown country code %q", code)
	}
	return nil
}

// Validate checks a whole contact: every required field present, formats
// plausible. AddressLine2 is optional.
func Validate(c registrar.ContactInfo) error {
	required := []struct {
		name, value string
	}{
		{"first name", c.FirstName},
		{"last name", c.LastName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address line 1", c.AddressLine1},
		{"city", c.City},
		{"state/province", c.State},
		{"postal code", c.PostalCode},
		{"country", c.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("missing required field: %s", f.name)
		}
	}

	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if err := ValidatePhone(c.Phone); err != nil {
		return err
	}
	return ValidateCountry(c.Country)
}

// ValidateOrder checks a purchase order end to end before it is sent.
func ValidateOrder(o registrar.PurchaseOrder) error {
	if strings.TrimSpace(o.Domain) == "" {
		return fmt.Errorf("missing domain")
	}
	if err := ValidateYears(o.Years); err != nil {
		return err
	}
	return Validate(o.Contact)
}
