package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/otpgate/internal/pkg/strcase"
)

// ErrTranslatorNotFound is returned when the English translator cannot be loaded.
var ErrTranslatorNotFound = errors.New("translator not found")

// rule is a string tag backed by a regular expression.
type rule struct {
	tag     string
	message string
	re      *regexp.Regexp
}

var rules = []rule{
	{tag: "otpcode", message: "{0} must be 4-10 digits", re: regexp.MustCompile(`^[0-9]{4,10}$`)},
	{tag: "ecclevel", message: "{0} must be one of L, M, Q or H", re: regexp.MustCompile(`^[LMQHlmqh]$`)},
}

// V10ValidationError maps snake_case field names to English messages.
type V10ValidationError map[string]string

func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}
	b, err := json.Marshal(map[string]string(vs))
	if err != nil {
		return fmt.Sprintf("validation error: %v", err)
	}
	return string(b)
}

// Values returns the field messages.
func (vs V10ValidationError) Values() map[string]string { return vs }

// V10Validator implements Validator with go-playground/validator v10.
type V10Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewV10Validator returns a validator with English messages and the otpcode and ecclevel tags.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	lang := en.New()
	trans, ok := ut.New(lang, lang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("register translations: %w", err)
	}

	for _, r := range rules {
		if err := r.register(validate, trans); err != nil {
			return nil, fmt.Errorf("register %s: %w", r.tag, err)
		}
	}

	return &V10Validator{validate: validate, trans: trans}, nil
}

func (r rule) register(validate *validator.Validate, trans ut.Translator) error {
	err := validate.RegisterValidation(r.tag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && r.re.MatchString(s)
	})
	if err != nil {
		return err
	}

	return validate.RegisterTranslation(r.tag, trans,
		func(t ut.Translator) error { return t.Add(r.tag, r.message, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// Validate checks data against its validate tags. Rule violations come back as V10ValidationError.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(V10ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.trans)
	}
	return out
}
