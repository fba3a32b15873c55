package api

import (
	"election_billing/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the domain enum checks on gin's validator
// engine. Must be called once before routes are served.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("election_type", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseElectionType(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("delivery_method", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDeliveryMethod(fl.Field().String())
		return err == nil
	})
}
