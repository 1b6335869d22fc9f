package http

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	"krysselista-backend/internal/domain/pickup"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

var (
	// letters in any script, spaces, hyphens and apostrophes
	rePersonName = regexp.MustCompile(`^[\p{L}][\p{L} '\-]{1,99}$`)
	rePhone      = regexp.MustCompile(`^[+0-9 ()\-]{8,20}$`)
)

type CustomValidator struct {
	v     *validator.Validate
	trans ut.Translator
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json/query names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				continue
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return rePersonName.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return rePhone.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	enLoc := en.New()
	trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")
	_ = entrans.RegisterDefaultTranslations(v, trans)
	custom := map[string]string{
		"personname": "{0} must be 2-100 letters, spaces, hyphens or apostrophes",
		"phone":      "{0} must be 8-20 characters of digits, spaces, +, -, ( or )",
	}
	for tag, text := range custom {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T(fe.Tag(), fe.Field())
				return s
			})
	}

	return &CustomValidator{v: v, trans: trans}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// FieldErrors flattens validator and domain validation errors into field messages.
func (cv *CustomValidator) FieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]FieldError, 0, len(ve))
		for _, e := range ve {
			out = append(out, FieldError{Field: e.Field(), Message: e.Translate(cv.trans)})
		}
		return out
	}
	var pe *pickup.ValidationError
	if errors.As(err, &pe) {
		out := make([]FieldError, 0, len(pe.Fields))
		for _, f := range pe.Fields {
			out = append(out, FieldError{Field: f.Field, Message: f.Reason})
		}
		return out
	}
	return []FieldError{{Field: "_", Message: err.Error()}}
}
