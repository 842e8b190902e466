// Package dto provides data transfer objects for authentication HTTP requests
// and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/zasta/tokenvault/internal/validation"
)

// AuthRequest contains the parameters for authenticating a service.
type AuthRequest struct {
	ServiceID string `json:"service_id"`
	Secret    string `json:"secret"`
}

// Validate checks if the auth request is valid.
func (r *AuthRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ServiceID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Secret,
			validation.Required,
			validation.Length(1, 1024),
		),
	)
}
