package notifications

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input is what a domain workflow supplies to create a notification.
// Generated fields (id, created_at, read) are not part of it.
type Input struct {
	SubjectID string `json:"subject_id,omitempty" validate:"omitempty,max=128"`
	Role      string `json:"role,omitempty" validate:"omitempty,max=64"`
	BookingID string `json:"booking_id,omitempty" validate:"omitempty,max=128"`
	Type      Type   `json:"type" validate:"required,max=64"`
	Title     string `json:"title" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,max=4000"`
	ActionURL string `json:"action_url,omitempty" validate:"omitempty,uri"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// normalize trims surrounding whitespace so blank values fail validation.
func (in Input) normalize() Input {
	in.SubjectID = strings.TrimSpace(in.SubjectID)
	in.Role = strings.TrimSpace(in.Role)
	in.BookingID = strings.TrimSpace(in.BookingID)
	in.Type = Type(strings.TrimSpace(string(in.Type)))
	in.Title = strings.TrimSpace(in.Title)
	in.Message = strings.TrimSpace(in.Message)
	in.ActionURL = strings.TrimSpace(in.ActionURL)
	return in
}

// Validate checks required fields. The returned error is a *ValidationError.
func (in Input) Validate() error {
	err := validate.Struct(in.normalize())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: map[string]string{"": err.Error()}}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}
