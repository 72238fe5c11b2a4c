package config

import "fmt"

// FieldError reports an invalid config field
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// ValidationError collects every field error found by Validate
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d config errors", len(e.Errors))
}

// Unwrap exposes the field errors to errors.As
func (e *ValidationError) Unwrap() []error {
	return e.Errors
}

// Add adds an error to the validation error
func (e *ValidationError) Add(err error) {
	e.Errors = append(e.Errors, err)
}

// HasErrors returns true if there are validation errors
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}
