package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter matches every InvalidParameterError via errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// Field names reported by InvalidParameterError.
const (
	FieldPrincipal         = "principal"
	FieldAnnualRatePercent = "annual_rate_percent"
	FieldTermMonths        = "term_months"
)

// InvalidParameterError reports which loan field broke its constraint and why.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func NewInvalidParameter(field, format string, args ...any) *InvalidParameterError {
	return &InvalidParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
