package http

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usernamePattern matches the account names the remote panel accepts:
// lowercase letters, digits and underscores.
var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// RegisterCustomValidators installs the "username" binding rule on gin's
// validator engine. Must run once before the first request is bound.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}
