package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"hotelinfinity/pkg/logger"
	"hotelinfinity/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type AdminValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAdminValidator(log *logger.Logger) *AdminValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &AdminValidator{
		validate: v,
		logger:   log,
	}
}

func (v *AdminValidator) ValidateCredentials(c *model.Credentials) error {
	return v.validateStruct(c)
}

func (v *AdminValidator) ValidateRegistration(r *model.Registration) error {
	return v.validateStruct(r)
}

func (v *AdminValidator) ValidatePriceUpdate(u *model.PriceUpdate) error {
	return v.validateStruct(u)
}

func (v *AdminValidator) ValidateStatusUpdate(u *model.BookingStatusUpdate) error {
	return v.validateStruct(u)
}

func (v *AdminValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		v.logger.Warn("Unexpected validation failure", "error", err)
		return err
	}
	return nil
}

func (v *AdminValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
