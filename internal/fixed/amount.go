package fixed

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Picture constants for S9(7)V99.
const (
	// Scale is the number of fractional digits.
	Scale = 2

	// Digits is the total number of decimal digits, integral plus fractional.
	Digits = 9

	// MaxUnits is the largest magnitude in hundredths (9,999,999.99).
	MaxUnits int64 = 999_999_999

	// Modulus is 10^Digits, the wrap point for high-order truncation.
	Modulus int64 = MaxUnits + 1
)

// Amount is a signed fixed-point decimal with two fractional digits,
// stored as a count of hundredths.
type Amount int64

var (
	Zero = Amount(0)         // Zero is 0.00.
	Max  = Amount(MaxUnits)  // Max is 9,999,999.99.
	Min  = Amount(-MaxUnits) // Min is -9,999,999.99.
)

// FromUnits creates an Amount from a count of hundredths.
// Returns a range error if |units| exceeds MaxUnits.
func FromUnits(units int64) (Amount, error) {
	a := Amount(units)
	if !a.InRange() {
		return 0, newParseError(ErrCodeOutOfRange, fmt.Sprintf("%d", units),
			fmt.Sprintf("%d hundredths exceeds %d digits", units, Digits))
	}
	return a, nil
}

// MustFromUnits is like FromUnits but panics on error.
// Intended for constants and tests.
func MustFromUnits(units int64) Amount {
	a, err := FromUnits(units)
	if err != nil {
		panic(err)
	}
	return a
}

// Units returns the amount as a count of hundredths.
func (a Amount) Units() int64 {
	return int64(a)
}

// InRange reports whether the amount fits the S9(7)V99 picture.
func (a Amount) InRange() bool {
	return a >= Min && a <= Max
}

// Sign returns -1, 0 or +1.
func (a Amount) Sign() int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	default:
		return 0
	}
}

// Abs returns the magnitude of a.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// Decimal returns the amount as an arbitrary-precision decimal with
// exponent -2.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Scale)
}

// String renders the amount with exactly two fractional digits,
// e.g. "-2.15", "0.03", "9999999.99".
func (a Amount) String() string {
	return a.Decimal().StringFixed(Scale)
}

// printer groups thousands for human-readable output.
var printer = message.NewPrinter(language.English)

// Format renders the amount with thousands separators, e.g. "9,999,999.99".
func (a Amount) Format() string {
	abs := a.Abs().Units()
	sign := ""
	if a < 0 {
		sign = "-"
	}
	return sign + printer.Sprintf("%d", abs/100) + fmt.Sprintf(".%02d", abs%100)
}

// MarshalText implements encoding.TextMarshaler.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalJSON encodes the amount as a JSON string ("12.34"), never a number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a JSON string. JSON numbers are rejected so that no
// float decoding path exists.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount must be a JSON string: %w", err)
	}
	return a.UnmarshalText([]byte(s))
}
