// Package validation checks decoded request bodies before they reach the
// services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	MaxForecastPatients = 100000
	MaxViewWidth        = 20000.0
)

func init() {
	validate = validator.New()
	// report fields by their JSON name
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// BedRequest is the body of a bed creation
type BedRequest struct {
	BedType      string `json:"bed_type" validate:"required,oneof=ICU Deluxe Normal General"`
	BedNumber    *int   `json:"bed_number" validate:"required,min=1"`
	BedStatus    string `json:"bed_status" validate:"omitempty,oneof=Available Occupied Cleaning Maintenance"`
	HospitalName string `json:"hospital_name" validate:"omitempty,max=200"`

	PatientName       string     `json:"patient_name" validate:"omitempty,max=200"`
	PatientAge        *int       `json:"patient_age" validate:"omitempty,min=0,max=150"`
	PatientAdmittedAt *time.Time `json:"patient_admitted_at"`
	PatientDischarge  *time.Time `json:"patient_est_discharge_at"`
	PatientHeartRate  *int       `json:"patient_vital_bpm" validate:"omitempty,min=0,max=300"`
	PatientSpO2       *int       `json:"patient_vital_spo2" validate:"omitempty,min=0,max=100"`
	PatientBP         string     `json:"patient_bp" validate:"omitempty,max=20"`
	PatientConditions string     `json:"patient_conditions" validate:"omitempty,max=500"`
}

// BedStatusRequest changes the status of a bed
type BedStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Available Occupied Cleaning Maintenance"`
}

// ForecastRequest asks for restock recommendations for a patient forecast
type ForecastRequest struct {
	Patients *int `json:"patients" validate:"required,min=0"`
}

// ViewRequest opens a layout view
type ViewRequest struct {
	Width          float64 `json:"width" validate:"gt=0"`
	ViewportHeight float64 `json:"viewport_height" validate:"gt=0"`
	AnchorRadius   float64 `json:"anchor_radius" validate:"gte=0"`
	Location       string  `json:"location" validate:"omitempty,max=200"`
}

// ResizeRequest reports a new container width
type ResizeRequest struct {
	Width float64 `json:"width" validate:"gt=0"`
}

// PointerRequest forwards one pointer event from the browser. Scope "card"
// is an event on the card itself, "root" an event anywhere in the window.
type PointerRequest struct {
	Type       string  `json:"type" validate:"required,oneof=down move up leave"`
	Scope      string  `json:"scope" validate:"omitempty,oneof=card root"`
	EntityID   string  `json:"entity_id" validate:"required_if=Type down"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	ButtonHeld bool    `json:"button_held"`
}

// Struct validates any tagged struct
func Struct(v any) error {
	if v == nil {
		return errors.New("request cannot be nil")
	}
	return formatValidationError(validate.Struct(v))
}

// ValidateBedRequest validates a bed creation request
func ValidateBedRequest(req *BedRequest) error {
	if req == nil {
		return errors.New("bed request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.PatientAdmittedAt != nil && req.PatientDischarge != nil &&
		req.PatientDischarge.Before(*req.PatientAdmittedAt) {
		return errors.New("patient_est_discharge_at: must not precede admission")
	}
	return nil
}

// ValidateForecastRequest validates a forecast request
func ValidateForecastRequest(req *ForecastRequest) error {
	if req == nil {
		return errors.New("forecast request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if *req.Patients > MaxForecastPatients {
		return fmt.Errorf("patients: must not exceed %d", MaxForecastPatients)
	}
	return nil
}

// ValidateViewRequest validates a view open request
func ValidateViewRequest(req *ViewRequest) error {
	if req == nil {
		return errors.New("view request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.Width > MaxViewWidth {
		return fmt.Errorf("width: must not exceed %v", MaxViewWidth)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required", "required_if":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "email":
			return fmt.Errorf("%s: must be a valid email address", field)
		case "e164":
			return fmt.Errorf("%s: must be an E.164 phone number", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
