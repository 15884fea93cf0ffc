package models

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrModelUnavailable  = errors.New("model unavailable")
	ErrUnrecognizedLabel = errors.New("unrecognized label")
	ErrRuleSetNotFound   = errors.New("rule set not found")
	ErrRuleSetMismatch   = errors.New("rule set does not apply to subject")
)

// InvalidInputError lists every field that failed validation.
type InvalidInputError struct {
	Fields []string
}

func NewInvalidInputError(fields ...string) *InvalidInputError {
	return &InvalidInputError{Fields: fields}
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
