package validation

import (
	"matchly/internal/listings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires domain validations into gin's binding
// engine. Call once at startup, before routes are served.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("delivery_method", validDeliveryMethod)
	}
}

func validDeliveryMethod(fl validator.FieldLevel) bool {
	return listings.DeliveryMethod(fl.Field().String()).IsValid()
}
