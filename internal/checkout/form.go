// ABOUTME: Checkout form model and per-step validation
// ABOUTME: Format checks only; no payment processing happens client side

package checkout

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Payment methods accepted by the backend.
const (
	PaymentCashOnDelivery = "cash-on-delivery"
	PaymentCard           = "card"
)

var (
	emailRe  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRe  = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	cardRe   = regexp.MustCompile(`^\d{16}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/?([0-9]{2})$`)
	cvvRe    = regexp.MustCompile(`^\d{3}$`)
)

// Form captures the multi-step checkout input.
type Form struct {
	// Step 1: address
	FirstName string
	LastName  string
	Email     string
	Address   string
	City      string
	ZipCode   string
	Country   string
	Phone     string

	// Step 2: payment
	PaymentMethod string
	CardNumber    string
	ExpiryDate    string
	CVV           string
}

// ValidateAddress checks the step 1 fields.
func (f *Form) ValidateAddress() error {
	required := []struct {
		label, value string
	}{
		{"first name", f.FirstName},
		{"last name", f.LastName},
		{"email", f.Email},
		{"address", f.Address},
		{"city", f.City},
		{"zip code", f.ZipCode},
		{"country", f.Country},
		{"phone", f.Phone},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s is required", field.label)
		}
	}
	if !emailRe.MatchString(strings.TrimSpace(f.Email)) {
		return errors.New("enter a valid email address")
	}
	if !phoneRe.MatchString(CleanPhone(f.Phone)) {
		return errors.New("enter a valid phone number")
	}
	return nil
}

// ValidatePayment checks the step 2 fields. Card details are format-checked
// only: 16-digit number, MM/YY expiry, 3-digit CVV.
func (f *Form) ValidatePayment() error {
	switch f.PaymentMethod {
	case PaymentCashOnDelivery:
		return nil
	case PaymentCard:
	default:
		return errors.New("select a payment method")
	}

	card := strings.ReplaceAll(f.CardNumber, " ", "")
	if !cardRe.MatchString(card) {
		return errors.New("card number must be 16 digits")
	}
	if !expiryRe.MatchString(strings.TrimSpace(f.ExpiryDate)) {
		return errors.New("expiry date must be in MM/YY format")
	}
	if !cvvRe.MatchString(strings.TrimSpace(f.CVV)) {
		return errors.New("CVV must be 3 digits")
	}
	return nil
}

// Validate runs all step validations in order.
func (f *Form) Validate() error {
	if err := f.ValidateAddress(); err != nil {
		return err
	}
	return f.ValidatePayment()
}

// CleanPhone strips spaces and dashes, matching what the backend accepts.
func CleanPhone(phone string) string {
	phone = strings.ReplaceAll(phone, " ", "")
	return strings.ReplaceAll(phone, "-", "")
}

// ValidateEmail checks a single email address value.
func ValidateEmail(s string) error {
	if !emailRe.MatchString(strings.TrimSpace(s)) {
		return errors.New("enter a valid email address")
	}
	return nil
}

// ValidatePhone checks a single phone number value after cleaning.
func ValidatePhone(s string) error {
	if !phoneRe.MatchString(CleanPhone(s)) {
		return errors.New("enter a valid phone number")
	}
	return nil
}

// ValidateCardNumber checks a 16-digit card number, ignoring spaces.
func ValidateCardNumber(s string) error {
	if !cardRe.MatchString(strings.ReplaceAll(s, " ", "")) {
		return errors.New("card number must be 16 digits")
	}
	return nil
}

// ValidateExpiry checks an MM/YY expiry date.
func ValidateExpiry(s string) error {
	if !expiryRe.MatchString(strings.TrimSpace(s)) {
		return errors.New("expiry date must be in MM/YY format")
	}
	return nil
}

// ValidateCVV checks a 3-digit CVV.
func ValidateCVV(s string) error {
	if !cvvRe.MatchString(strings.TrimSpace(s)) {
		return errors.New("CVV must be 3 digits")
	}
	return nil
}
