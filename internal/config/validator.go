// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `loader.go` calls `validateStruct` immediately after it unmarshals and
// defaults the merged Koanf tree.  Any validation error aborts startup, so
// the binary never runs with partial, malformed, or missing configuration.
//
// Besides the built-in rules, one custom rule is registered:
//
//	cron  the value parses as a robfig/cron schedule (standard five-field
//	      spec or a descriptor such as "@every 5m").
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.
package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("cron", func(fl validator.FieldLevel) bool {
		_, err := cron.ParseStandard(fl.Field().String())
		return err == nil
	})
	return val
}

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
