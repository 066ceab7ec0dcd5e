package auth

import (
	"github.com/dmitrymomot/authclient/pkg/sanitizer"
	"github.com/dmitrymomot/authclient/pkg/validator"
)

// Profile is the registration form.
type Profile struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Normalize trims the text fields and lower-cases the email. Passwords are
// left exactly as typed.
func (p Profile) Normalize() Profile {
	p.Username = sanitizer.NormalizeWhitespace(p.Username)
	p.Email = sanitizer.NormalizeEmail(p.Email)
	p.Phone = sanitizer.Trim(p.Phone)
	return p
}

// Validate reports at most one message per field.
func (p Profile) Validate() error {
	return validator.ApplyFirst(
		validator.Required("username", p.Username, "Username is required"),
		validator.MinLen("username", p.Username, 3, "Username must be at least 3 characters"),

		validator.Required("email", p.Email, "Email is required"),
		validator.Email("email", p.Email, "Please enter a valid email"),

		validator.Required("phone", p.Phone, "Phone number is required"),
		validator.Digits("phone", p.Phone, 10, 15, "Please enter 10-15 digit phone number"),

		validator.Required("password", p.Password, "Password is required"),
		validator.MinLen("password", p.Password, 6, "Password must be at least 6 characters"),
		validator.HasUppercase("password", p.Password, "Password must contain at least one uppercase letter"),

		validator.Equal("confirmPassword", p.ConfirmPassword, p.Password, "Passwords do not match"),
	)
}
