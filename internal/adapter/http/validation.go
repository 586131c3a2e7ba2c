package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Reusable error payloads (§6 shapes share one struct)
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Message string       `json:"message"`
	Error   string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json field names, not Go struct names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Messages the portal form shows for each missing field.
var requiredMessages = map[string]string{
	"vehicleNumber":      "Vehicle number is required",
	"parkingBrake":       "Parking brake inspection is required",
	"fluidLevels":        "Fluid levels inspection is required",
	"tires":              "Tire inspection is required",
	"engineFluids":       "Engine fluids inspection is required",
	"lights":             "Lights inspection is required",
	"doorsAndSeatbelts":  "Doors and seatbelts inspection is required",
	"emergencyEquipment": "Emergency equipment inspection is required",
}

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			msg, ok := requiredMessages[field]
			if !ok {
				msg = "is required"
			}
			out = append(out, FieldError{Field: field, Message: msg})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must not be empty"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
