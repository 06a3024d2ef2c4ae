package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init hooks gin's validator so field errors carry json names, then applies
// module registrations (custom tags such as "notblank").
func Init(registrations ...func(v *validator.Validate) error) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for _, register := range registrations {
		if err := register(v); err != nil {
			return err
		}
	}
	return nil
}
