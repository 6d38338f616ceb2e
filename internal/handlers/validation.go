package handlers

import (
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("cashtype", func(fl validator.FieldLevel) bool {
		return domain.CashType(fl.Field().String()).IsValid()
	})
}
