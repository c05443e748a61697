package utils

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"main/model"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	registerCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidators(v)
	}
}

func registerCustomValidators(v *validator.Validate) {
	v.RegisterValidation("timeframe", ValidateTimeframeRule)
	v.RegisterValidation("outcome", ValidateOutcomeRule)
}

// ValidateTimeframeRule accepts the supported goal timeframes.
func ValidateTimeframeRule(fl validator.FieldLevel) bool {
	return model.ValidTimeframe(model.GoalTimeframe(fl.Field().String()))
}

// ValidateOutcomeRule accepts the supported reflection outcomes.
func ValidateOutcomeRule(fl validator.FieldLevel) bool {
	switch model.ReflectionOutcome(fl.Field().String()) {
	case model.OutcomeSuccess, model.OutcomeFailure:
		return true
	}
	return false
}
