package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/m3rciful/dobot/internal/accounts"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their yaml names so errors match the config file.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("account_id", func(fl validator.FieldLevel) bool {
		return accounts.ValidID(fl.Field().String())
	})
	return v
}

func formatValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	// drop the root type name
	field := e.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be >= %s", field, e.Param())
	case "url":
		return field + " must be a valid URL"
	case "email":
		return field + " must be an email address"
	case "account_id":
		return fmt.Sprintf("%s must be at most %d letters, digits, '-' or '_'", field, accounts.MaxIDLen)
	case "hostname_port":
		return field + " must be host:port"
	}
	return fmt.Sprintf("%s failed %s", field, e.Tag())
}
