package validator

import (
	"errors"
	"fmt"
	"strings"

	"slotdesk/pkg/config"
	"slotdesk/pkg/model"

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

// BookingValidator checks request shape via struct tags and enforces the
// configured field length caps and per-booking slot limit.
type BookingValidator struct {
	validate *validator.Validate
	cfg      *config.Config
}

func NewBookingValidator(cfg *config.Config) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (v *BookingValidator) ValidateBooking(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	var errs ValidationErrors
	if len(req.Name) > v.cfg.MaxNameLength {
		errs = append(errs, ValidationError{
			Field:   "Name",
			Message: fmt.Sprintf("name must be at most %d characters", v.cfg.MaxNameLength),
		})
	}
	if len(req.Phone) > v.cfg.MaxPhoneLength {
		errs = append(errs, ValidationError{
			Field:   "Phone",
			Message: fmt.Sprintf("phone must be at most %d characters", v.cfg.MaxPhoneLength),
		})
	}
	if len(req.Category) > v.cfg.MaxCategoryLength {
		errs = append(errs, ValidationError{
			Field:   "Category",
			Message: fmt.Sprintf("category must be at most %d characters", v.cfg.MaxCategoryLength),
		})
	}
	if len(req.Notes) > v.cfg.MaxNotesLength {
		errs = append(errs, ValidationError{
			Field:   "Notes",
			Message: fmt.Sprintf("notes must be at most %d characters", v.cfg.MaxNotesLength),
		})
	}
	if len(req.SlotIDs) > v.cfg.MaxSlotsPerBooking {
		errs = append(errs, ValidationError{
			Field:   "SlotIDs",
			Message: fmt.Sprintf("at most %d slots per booking", v.cfg.MaxSlotsPerBooking),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *BookingValidator) ValidateCancel(req *model.CancelRequest) error {
	if err := v.validate.Struct(req); err != nil {
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
			message = fmt.Sprintf("%s must have at least %s element(s)", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
