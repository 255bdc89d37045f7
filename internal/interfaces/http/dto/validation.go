package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/stocktier/backend/internal/domain/pricing"
)

// RegisterCustomValidations installs domain-aware binding rules on gin's
// validator. Call once at startup, before any request is served.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("tier", validTier)
}

// validTier accepts any tier in the pricing hierarchy. The empty string
// passes so the rule composes with omitempty-style optional fields.
func validTier(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return pricing.Tier(s).IsValid()
}
