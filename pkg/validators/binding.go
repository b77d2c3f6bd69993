package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// Register hooks the custom tags into gin's validator. Safe to call more
// than once
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("gin validator engine is not go-playground/validator")
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		// Money is validated as a float so gt/min/max work on it
		v.RegisterCustomTypeFunc(func(f reflect.Value) any {
			d, ok := f.Interface().(decimal.Decimal)
			if !ok {
				return nil
			}
			fl, _ := d.Float64()
			return fl
		}, decimal.Decimal{})

		v.RegisterValidation("mail", func(fl validator.FieldLevel) bool {
			return EmailValidator(fl.Field().String()) == nil
		})

		v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return PasswordValidator(fl.Field().String()) == nil
		})
	})
}

// Message turns a binding error into something that can be shown to the
// user. Only the first failing field is reported
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	name := displayName(fe.Field())

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "mail", "email":
		return "Invalid email address"
	case "password":
		if err := PasswordValidator(fmt.Sprint(fe.Value())); err != nil {
			return capitalize(err.Error())
		}
		return "Invalid password"
	case "eqfield":
		if fe.Field() == "confirmPassword" {
			return "Passwords don't match"
		}
		return fmt.Sprintf("%s must match %s", name, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return name + " must be positive"
		}
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "url":
		return "Invalid " + strings.ToLower(name) + " URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	}

	return name + " is invalid"
}

// displayName turns a json field name like postalCode into "Postal code"
func displayName(field string) string {
	var b strings.Builder

	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
