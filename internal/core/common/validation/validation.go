package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the HR-specific tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// report json names instead of Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("role", oneOf(apperrors.RoleAdmin, apperrors.RoleHR, apperrors.RoleEmployee))
		_ = validate.RegisterValidation("employment_status", oneOf("Active", "Inactive"))
		_ = validate.RegisterValidation("leave_decision", oneOf("Approved", "Rejected"))
		_ = validate.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(DateLayout, fl.Field().String())
			return err == nil
		})
	})
	return validate
}

func oneOf(values ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}

// Struct validates s and converts field failures into a 400 AppError.
func Struct(s interface{}) *apperrors.AppError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error(), apperrors.ErrCodeInvalidRequest)
	}

	details := make([]apperrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apperrors.ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    string(code(fe)),
		})
	}

	return apperrors.NewValidationError("Validation failed", apperrors.ErrCodeValidationFailed).
		WithDetails(apperrors.ValidationErrors{Errors: details})
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "role":
		return fmt.Sprintf("%s must be one of [Admin HR Employee]", field)
	case "employment_status":
		return fmt.Sprintf("%s must be one of [Active Inactive]", field)
	case "leave_decision":
		return fmt.Sprintf("%s must be one of [Approved Rejected]", field)
	case "date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func code(fe validator.FieldError) apperrors.ErrorCode {
	switch fe.Tag() {
	case "date":
		return apperrors.ErrCodeInvalidDate
	case "min", "gte", "max", "lte":
		if fe.Kind() != reflect.String {
			return apperrors.ErrCodeInvalidAmount
		}
	}
	return apperrors.ErrCodeValidationFailed
}

// ParseDate parses a YYYY-MM-DD value into a UTC midnight time.
func ParseDate(field, value string) (time.Time, *apperrors.AppError) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationFieldError(field,
			fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field), apperrors.ErrCodeInvalidDate)
	}
	return t, nil
}

// DateRange checks that start is not after end.
func DateRange(startField string, start, end time.Time) *apperrors.AppError {
	if start.After(end) {
		return apperrors.NewValidationFieldError(startField,
			fmt.Sprintf("%s must not be after end date", startField), apperrors.ErrCodeInvalidDateRange)
	}
	return nil
}
