package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/pkg/errors"
)

// Validator wraps go-playground/validator to check a command's Parameters
// struct against its declared schema before any rule runs. It never
// imports the kernel package — callers translate the returned
// *errors.AppError into a kernel.CommandError at the call site.
type Validator struct {
	validator *validator.Validate
}

// New builds a Validator with the engine's custom validation tags
// registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations(v)

	return &Validator{validator: v}
}

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("entityname", validateEntityName)
	_ = v.RegisterValidation("dicenotation", validateDiceNotation)
	_ = v.RegisterValidation("abilityscore", validateAbilityScore)
}

// Validate checks i against its struct tags, returning an
// *errors.AppError (VALIDATION_FAILED) with one detail entry per offending
// field, or nil.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *Validator) formatValidationError(err error) error {
	validationErrors := &errors.ValidationErrors{}

	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()
			param := fe.Param()
			validationErrors.Add(field, v.getErrorMessage(field, tag, param))
		}
	}

	return validationErrors.ToAppError()
}

func (v *Validator) getErrorMessage(field, tag, param string) string {
	messages := map[string]string{
		"required":     fmt.Sprintf("%s is required", field),
		"min":          fmt.Sprintf("%s must be at least %s", field, param),
		"max":          fmt.Sprintf("%s must be at most %s", field, param),
		"oneof":        fmt.Sprintf("%s must be one of: %s", field, param),
		"entityname":   fmt.Sprintf("%s must be a valid entity name (3-50 characters, letters, spaces, hyphens, and apostrophes only)", field),
		"dicenotation": fmt.Sprintf("%s must be valid dice notation (e.g., 2d6+3)", field),
		"abilityscore": fmt.Sprintf("%s must be between 3 and 18", field),
	}

	if msg, ok := messages[tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}

// validateEntityName accepts letters, spaces, hyphens, and apostrophes,
// 3-50 characters — enough to name a character, monster, or item without
// pinning down a ruleset's naming conventions.
func validateEntityName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if len(name) < 3 || len(name) > 50 {
		return false
	}
	for _, char := range name {
		valid := (char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			char == ' ' || char == '-' || char == '\''
		if !valid {
			return false
		}
	}
	return true
}

var diceNotationRegex = regexp.MustCompile(`^\d+d\d+(?:[+-]\d+)?$`)

func validateDiceNotation(fl validator.FieldLevel) bool {
	return diceNotationRegex.MatchString(fl.Field().String())
}

// validateAbilityScore enforces the OSRIC 3-18 ability score range (before
// racial adjustments, which can push individual scores outside it — rule
// bodies apply those, this only gates raw input).
func validateAbilityScore(fl validator.FieldLevel) bool {
	score := fl.Field().Int()
	return score >= 3 && score <= 18
}

var defaultValidator *Validator

// Init sets the package-level default Validator.
func Init() {
	defaultValidator = New()
}

// GetValidator returns the package-level default Validator, lazily
// constructing one if Init was never called.
func GetValidator() *Validator {
	if defaultValidator == nil {
		Init()
	}
	return defaultValidator
}

// ValidateStruct validates s against the package-level default Validator.
func ValidateStruct(s interface{}) error {
	return GetValidator().Validate(s)
}
