package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

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
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details renders the errors as field -> message for an API response.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type HotelValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewHotelValidator(log *logger.Logger) *HotelValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	log.Info("Hotel validator initialized successfully")

	return &HotelValidator{
		validate: v,
		logger:   log,
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func (v *HotelValidator) ValidateReview(review *model.NewReview) error {
	return v.validateStruct(review)
}

// ValidateBooking checks field formats and that the booking names exactly
// the kind of venue its type says. Whether that venue exists is not checked.
func (v *HotelValidator) ValidateBooking(booking *model.NewBooking) error {
	if err := v.validateStruct(booking); err != nil {
		return err
	}

	var errs ValidationErrors
	switch booking.Type {
	case model.BookingTypeRoom:
		if booking.RoomID == "" {
			errs = append(errs, ValidationError{Field: "roomId", Message: "roomId is required for room bookings"})
		}
		if booking.HallID != "" {
			errs = append(errs, ValidationError{Field: "hallId", Message: "hallId must be empty for room bookings"})
		}
	case model.BookingTypeHall:
		if booking.HallID == "" {
			errs = append(errs, ValidationError{Field: "hallId", Message: "hallId is required for hall bookings"})
		}
		if booking.RoomID != "" {
			errs = append(errs, ValidationError{Field: "roomId", Message: "roomId must be empty for hall bookings"})
		}
	}

	checkIn, inErr := time.Parse(model.DateLayout, booking.CheckIn)
	checkOut, outErr := time.Parse(model.DateLayout, booking.CheckOut)
	if inErr == nil && outErr == nil && checkOut.Before(checkIn) {
		errs = append(errs, ValidationError{Field: "checkOut", Message: "checkOut cannot be before checkIn"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *HotelValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +919876543210)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
