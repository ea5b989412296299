package auth

import "errors"

// ErrInvalidLogin is returned when the submitted form cannot sign anyone in.
var ErrInvalidLogin = errors.New("auth: invalid login")

// loginForm is the submitted sign-in form.
type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Role     string `validate:"required,oneof=super-admin supervisor supplier client employee"`
}

// fieldMessages maps validator tags to the text shown under a field.
var fieldMessages = map[string]string{
	"Email.required":    "Email is required",
	"Email.email":       "Enter a valid email address",
	"Password.required": "Password is required",
	"Role.required":     "Choose a role",
	"Role.oneof":        "Choose a role",
}
