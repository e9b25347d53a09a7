package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type registrationInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

var validate = validator.New()

// Registration checks a registration payload and returns the normalized email
// plus the full list of rule violations, not just the first one.
func Registration(email, password string) (string, []FieldError) {
	email = strings.ToLower(strings.TrimSpace(email))

	err := validate.Struct(registrationInput{Email: email, Password: password})
	if err == nil {
		return email, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return email, []FieldError{{Field: "body", Message: "invalid payload"}}
	}

	fieldErrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Email":
			fieldErrs = append(fieldErrs, FieldError{Field: "email", Message: "Valid email required"})
		case "Password":
			fieldErrs = append(fieldErrs, FieldError{Field: "password", Message: "Password must be at least 8 characters"})
		}
	}
	return email, fieldErrs
}
