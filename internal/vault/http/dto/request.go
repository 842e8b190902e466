// Package dto provides data transfer objects for vault HTTP requests and
// responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/zasta/tokenvault/internal/validation"
)

// TokenizeRequest contains a request identifier and the field values to tokenize.
type TokenizeRequest struct {
	ID   string            `json:"id"`
	Data map[string]string `json:"data"`
}

// Validate checks if the tokenize request is valid.
func (r *TokenizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Data,
			validation.Required,
			validation.By(validateFieldNames),
		),
	)
}

// DetokenizeRequest contains a request identifier and the field tokens to resolve.
type DetokenizeRequest struct {
	ID   string            `json:"id"`
	Data map[string]string `json:"data"`
}

// Validate checks if the detokenize request is valid.
func (r *DetokenizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Data,
			validation.Required,
			validation.By(validateFieldNames),
		),
	)
}

// validateFieldNames requires a non-empty map whose field names are not blank.
func validateFieldNames(value any) error {
	data, ok := value.(map[string]string)
	if !ok {
		return validation.NewError("validation_data_type", "must be a map of fields")
	}
	if len(data) == 0 {
		return validation.NewError("validation_data_empty", "must contain at least one field")
	}
	for name := range data {
		if err := customValidation.NotBlank.Validate(name); err != nil {
			return validation.NewError("validation_field_name", "field names must not be blank")
		}
	}
	return nil
}
