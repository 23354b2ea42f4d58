// Package validation provides input validation for API request bodies.
// Messages are Spanish, matching the product's user-facing language.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("por favor ingresa un email válido")
	}
	if len(email) > 254 {
		return fmt.Errorf("el email no debe exceder 254 caracteres")
	}
	return nil
}

// ValidatePassword enforces the account password policy.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 6 {
		return fmt.Errorf("la contraseña debe tener al menos 6 caracteres")
	}
	if len(password) > 128 {
		return fmt.Errorf("la contraseña no debe exceder 128 caracteres")
	}
	return nil
}

// ValidateName checks a person or account display name.
func ValidateName(name string) error {
	if utf8.RuneCountInString(name) < 2 {
		return fmt.Errorf("el nombre debe tener al menos 2 caracteres")
	}
	if utf8.RuneCountInString(name) > 100 {
		return fmt.Errorf("el nombre no debe exceder 100 caracteres")
	}
	return nil
}

// ValidateContactMessage checks the contact form body.
func ValidateContactMessage(name, email, message string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if utf8.RuneCountInString(message) < 10 {
		return fmt.Errorf("el mensaje debe tener al menos 10 caracteres")
	}
	return nil
}
