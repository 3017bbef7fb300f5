package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	apperrors "crm-backend/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"
const dateLayout = "2006-01-02"

// NewValidator returns a validator reporting json field names
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct runs struct validation and converts the first failure into a ValidationError
func ValidateStruct(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("validation failed: %w", apperrors.NewValidationError(fe.Field(), validationMessage(fe)))
	}
	return fmt.Errorf("validation failed: %w", apperrors.NewValidationError("", err.Error()))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed on " + fe.Tag()
	}
}

// Amount is a money input that never fails to decode: numbers and numeric strings are taken as is,
// anything blank, absent or unparseable becomes zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal value
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// ParseAmount parses user input the same way JSON decoding does
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{Decimal: decimal.Zero}
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return Amount{Decimal: decimal.Zero}
	}
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		*a = ParseAmount(s)
		return nil
	}
	*a = ParseAmount(string(data))
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return a.Decimal.MarshalJSON()
}

// Date is an optional calendar date accepting YYYY-MM-DD or RFC3339
type Date struct {
	Time  time.Time
	Valid bool
}

// ParseDate parses s into a Date; an empty string yields an unset Date
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t, Valid: true}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{Time: t, Valid: true}, nil
}

// NewDate returns a set Date
func NewDate(t time.Time) Date {
	return Date{Time: t, Valid: true}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(dateLayout))
}

// Ptr returns the date as a nullable column value
func (d Date) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// OptionalID is a nullable reference; null and "" both mean no reference
type OptionalID struct {
	ID    uuid.UUID
	Valid bool
}

// SomeID returns a set OptionalID
func SomeID(id uuid.UUID) OptionalID {
	return OptionalID{ID: id, Valid: true}
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("id must be a string: %w", err)
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		*o = OptionalID{}
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*s))
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", *s, err)
	}
	*o = SomeID(id)
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.ID.String())
}

// Ptr returns the reference as a nullable column value
func (o OptionalID) Ptr() *uuid.UUID {
	if !o.Valid {
		return nil
	}
	id := o.ID
	return &id
}
