package validate

import (
	"github.com/go-playground/validator/v10"
)

// instancia compartida; validator cachea metadata de structs, conviene una sola.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un request decodificado según sus tags `validate`.
func Struct(s any) error {
	return v.Struct(s)
}
