package validator

import (
	"log"

	"iblaze_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	// Без правил приложение не должно запускаться
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// ➡️ Правила, основанные на 'statuses.go'
	mustRegister("is-user-role", stringRule(func(s string) bool { return models.UserRole(s).Valid() }))
	mustRegister("is-user-status", stringRule(func(s string) bool { return models.UserStatus(s).Valid() }))
	mustRegister("is-idea-stage", stringRule(func(s string) bool { return models.IdeaStage(s).Valid() }))
	mustRegister("is-job-type", stringRule(func(s string) bool { return models.JobType(s).Valid() }))
	mustRegister("is-work-mode", stringRule(func(s string) bool { return models.WorkMode(s).Valid() }))
}

// stringRule - пустые значения не проверяем, для этого есть 'required'
func stringRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}
