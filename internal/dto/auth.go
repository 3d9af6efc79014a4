package dto

import (
	"strings"

	"github.com/crucial707/travel-tracker/internal/models"
)

// CredentialsRequest is the body of both register and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,max=254,email"`
	Password string `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
}

// Normalize trims the email (case is preserved) and validates both fields.
func (r CredentialsRequest) Normalize() (models.Credentials, error) {
	r.Email = strings.TrimSpace(r.Email)
	if err := check(r); err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{Email: r.Email, Password: r.Password}, nil
}
