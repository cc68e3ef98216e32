package authmodal

import (
	"launchpad/internal/models"
	"launchpad/internal/validation"
)

// FieldError is a validation failure attached to a specific form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// LoginForm carries the login form fields.
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks required fields before any network call.
func (f LoginForm) Validate() error {
	if f.Email == "" {
		return &FieldError{Field: "email", Message: "Email is required"}
	}
	if f.Password == "" {
		return &FieldError{Field: "password", Message: "Password is required"}
	}
	return nil
}

// RegisterForm carries the register form fields, including the confirmation
// password that never leaves the client.
type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

// Validate checks the form locally. A password/confirmation mismatch is a
// field-level error and must abort submission without any network call;
// the session controller does not re-validate it.
func (f RegisterForm) Validate() error {
	if f.Username == "" {
		return &FieldError{Field: "username", Message: "Username is required"}
	}
	if f.FullName == "" {
		return &FieldError{Field: "fullName", Message: "Full name is required"}
	}
	if f.Email == "" {
		return &FieldError{Field: "email", Message: "Email is required"}
	}
	if err := validation.ValidateUsername(f.Username); err != nil {
		return &FieldError{Field: "username", Message: err.Error()}
	}
	if err := validation.ValidateEmail(f.Email); err != nil {
		return &FieldError{Field: "email", Message: err.Error()}
	}
	if err := validation.ValidatePassword(f.Password); err != nil {
		return &FieldError{Field: "password", Message: err.Error()}
	}
	if f.Password != f.ConfirmPassword {
		return &FieldError{Field: "confirmPassword", Message: "Passwords do not match"}
	}
	return nil
}

// Input converts the validated form into the register payload. The
// confirmation password is deliberately dropped.
func (f RegisterForm) Input() models.RegisterInput {
	return models.RegisterInput{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
		FullName: f.FullName,
	}
}
