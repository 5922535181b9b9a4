// Package validation validates request payloads and renders English field errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// DateLayouts are the accepted layouts for the "date" rule.
var DateLayouts = []string{"2006-01-02", time.RFC3339}

// FieldError describes one invalid request field.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// Errors is returned by Struct when one or more fields are invalid.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Param + ": " + fe.Msg
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator wraps go-playground/validator with an English translator.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with json field names, English messages and the "date" rule.
func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("register translations: %w", err)
	}

	if err := v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := ParseDate(s)
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("register date rule: %w", err)
	}

	if err := v.RegisterTranslation("date", trans,
		func(ut ut.Translator) error {
			return ut.Add("date", "{0} must be a date (YYYY-MM-DD)", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("date", fe.Field())
			return t
		},
	); err != nil {
		return nil, fmt.Errorf("register date translation: %w", err)
	}

	return &Validator{validate: v, trans: trans}, nil
}

// Struct validates s. Invalid fields are reported as Errors in declaration order.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Param: fe.Field(),
			Msg:   fe.Translate(v.trans),
		})
	}

	return out
}

// ParseDate parses a date in one of DateLayouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
