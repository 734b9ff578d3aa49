package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/util"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{validate: v}
}

// Struct validates s against its `validate` tags. It returns nil when s is valid.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.NewInternalError("validation could not run", err)
	}

	var errs domain.ValidationErrors
	for _, fe := range fieldErrs {
		errs = append(errs, toDomain(fe))
	}
	return errs
}

func toDomain(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return domain.NewMissingFieldError(field)
	case "min", "max", "gte", "lte":
		return outOfRange(fe)
	default:
		return domain.NewInvalidFormatError(field, fe.Value())
	}
}

func outOfRange(fe validator.FieldError) domain.ValidationError {
	subject := "value"
	if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
		subject = "length"
	}
	msg := subject + " must be at least " + fe.Param()
	if fe.Tag() == "max" || fe.Tag() == "lte" {
		msg = subject + " must be at most " + fe.Param()
	}
	return domain.ValidationError{
		Code:    domain.CodeOutOfRange,
		Field:   fe.Field(),
		Message: msg,
		Value:   fe.Value(),
	}
}

// ValidateSessionID checks a session identifier path parameter.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errs = append(errs, domain.NewMissingFieldError("id"))
	} else if !util.IsULID(id) {
		errs = append(errs, domain.NewInvalidFormatError("id", id))
	}
	return errs
}
