package fixed

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError describes a literal that cannot be represented as an Amount.
type ParseError struct {
	// Code identifies the error category.
	Code ParseErrorCode

	// Input is the offending literal.
	Input string

	// Message is a human-readable description.
	Message string
}

// ParseErrorCode categorizes parse errors.
type ParseErrorCode string

const (
	// ErrCodeSyntax indicates the literal is not a decimal number.
	ErrCodeSyntax ParseErrorCode = "SYNTAX"

	// ErrCodeScale indicates more than two significant fractional digits.
	ErrCodeScale ParseErrorCode = "SCALE"

	// ErrCodeOutOfRange indicates the magnitude exceeds the picture.
	ErrCodeOutOfRange ParseErrorCode = "OUT_OF_RANGE"
)

func newParseError(code ParseErrorCode, input, msg string) *ParseError {
	return &ParseError{Code: code, Input: input, Message: msg}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s (input=%q)", e.Code, e.Message, e.Input)
}

// IsRangeError returns true if err is a ParseError with ErrCodeOutOfRange.
// Uses errors.As to handle wrapped errors.
func IsRangeError(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeOutOfRange
	}
	return false
}

// literalPattern is the plain decimal grammar: optional sign, digits and an
// optional fraction. Exponents are not accepted.
var literalPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// Parse converts a decimal literal such as "-5.25", "3.1" or "7" into an
// Amount. Surrounding whitespace is ignored. Trailing fractional zeros
// beyond two places are accepted ("1.500"); any other extra precision is a
// scale error and never rounded.
func Parse(s string) (Amount, error) {
	lit := strings.TrimSpace(s)
	if lit == "" {
		return 0, newParseError(ErrCodeSyntax, s, "empty literal")
	}

	if !literalPattern.MatchString(lit) {
		return 0, newParseError(ErrCodeSyntax, s, "not a plain decimal literal")
	}

	d, err := decimal.NewFromString(lit)
	if err != nil {
		return 0, newParseError(ErrCodeSyntax, s, err.Error())
	}

	return fromDecimal(d, s)
}

// MustParse is like Parse but panics on error.
// Intended for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromDecimal converts an arbitrary-precision decimal into an Amount
// without rounding.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	return fromDecimal(d, decimalInput(d))
}

// decimalInput renders d for error messages. Extreme exponents are kept in
// exponent form so the message stays short.
func decimalInput(d decimal.Decimal) string {
	if exp := d.Exponent(); exp > 40 || exp < -40 {
		return fmt.Sprintf("%se%d", d.Coefficient(), exp)
	}
	return d.String()
}

// fromDecimal reports errors against input. The exponent checks keep
// extreme exponents from being rescaled into huge integers.
func fromDecimal(d decimal.Decimal, input string) (Amount, error) {
	if d.IsZero() {
		return 0, nil
	}

	exp := int64(d.Exponent())
	if exp+Scale > 18 {
		return 0, newParseError(ErrCodeOutOfRange, input,
			fmt.Sprintf("magnitude exceeds %s", Max))
	}
	if -exp-Scale >= int64(d.NumDigits()) {
		return 0, newParseError(ErrCodeScale, input,
			fmt.Sprintf("more than %d fractional digits", Scale))
	}

	scaled := d.Shift(Scale)
	if !scaled.IsInteger() {
		return 0, newParseError(ErrCodeScale, input,
			fmt.Sprintf("more than %d fractional digits", Scale))
	}

	// Range check before IntPart to avoid int64 overflow on huge inputs.
	if scaled.Abs().GreaterThan(decimal.NewFromInt(MaxUnits)) {
		return 0, newParseError(ErrCodeOutOfRange, input,
			fmt.Sprintf("magnitude exceeds %s", Max))
	}

	return Amount(scaled.IntPart()), nil
}
