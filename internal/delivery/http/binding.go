package http

import (
	"github.com/belovedly/backend/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidations installs domain-aware rules on gin's binding validator.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("interaction_kind", func(fl validator.FieldLevel) bool {
		return domain.InteractionKind(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("sort_option", func(fl validator.FieldLevel) bool {
		return domain.CommentSortOption(fl.Field().String()).Valid()
	})
}
