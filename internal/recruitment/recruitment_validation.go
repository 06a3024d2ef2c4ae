package recruitment

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RegisterValidation adds the tags used by the posting request DTOs.
func RegisterValidation(v *validator.Validate) error {
	return v.RegisterValidation("notblank", validators.NotBlank)
}
