package adder

import (
	"errors"
	"fmt"

	"github.com/roach88/fpadd/internal/fixed"
)

// SizeError reports a value that does not fit the S9(7)V99 picture.
//
// It is returned by AddChecked for either an out-of-range operand or an
// out-of-range sum. Add never returns it; Add reports through Status.
type SizeError struct {
	// Code identifies the error category.
	Code SizeErrorCode

	// Message is a human-readable description.
	Message string

	// Operand names the offending parameter ("a" or "b") for operand errors.
	Operand string

	// Value is the out-of-range operand or sum, in hundredths.
	Value int64
}

// SizeErrorCode categorizes size errors.
type SizeErrorCode string

const (
	// ErrCodeSumOverflow indicates the exact sum exceeds the picture.
	ErrCodeSumOverflow SizeErrorCode = "SUM_OVERFLOW"

	// ErrCodeOperandRange indicates an input exceeds the picture.
	ErrCodeOperandRange SizeErrorCode = "OPERAND_RANGE"
)

// Error implements the error interface.
func (e *SizeError) Error() string {
	if e.Operand != "" {
		return fmt.Sprintf("%s: %s (operand=%s)", e.Code, e.Message, e.Operand)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Status maps the error to the status code Add would report.
func (e *SizeError) Status() Status {
	return StatusSizeError
}

// IsSizeError returns true if err is a SizeError.
// Uses errors.As to handle wrapped errors.
func IsSizeError(err error) bool {
	var se *SizeError
	return errors.As(err, &se)
}

// NewSizeError creates a SizeError for an out-of-range sum.
func NewSizeError(x, y, sum fixed.Amount) *SizeError {
	return &SizeError{
		Code:    ErrCodeSumOverflow,
		Message: fmt.Sprintf("%s + %s exceeds %s", x, y, fixed.Max),
		Value:   sum.Units(),
	}
}

// NewOperandError creates a SizeError for an out-of-range operand.
func NewOperandError(name string, v fixed.Amount) *SizeError {
	return &SizeError{
		Code:    ErrCodeOperandRange,
		Message: fmt.Sprintf("%d hundredths exceeds %s", v.Units(), fixed.Max),
		Operand: name,
		Value:   v.Units(),
	}
}
