package linkage

import (
	"errors"
	"fmt"
)

const (
	positiveOverpunch = "{ABCDEFGHI"
	negativeOverpunch = "}JKLMNOPQR"
)

// RecordError describes a malformed record or field.
type RecordError struct {
	// Code identifies the error category.
	Code RecordErrorCode

	// Field names the parameter being decoded, if any.
	Field string

	// Offset is the byte offset within the record (or field) of the problem.
	Offset int

	// Message is a human-readable description.
	Message string
}

// RecordErrorCode categorizes record errors.
type RecordErrorCode string

const (
	// ErrCodeLength indicates a record or field of the wrong size.
	ErrCodeLength RecordErrorCode = "LENGTH"

	// ErrCodeDigit indicates a non-digit byte in a numeric position.
	ErrCodeDigit RecordErrorCode = "DIGIT"

	// ErrCodeSign indicates an unrecognized overpunch byte.
	ErrCodeSign RecordErrorCode = "SIGN"

	// ErrCodeOverflow indicates a value too wide for its field.
	ErrCodeOverflow RecordErrorCode = "OVERFLOW"
)

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s, offset=%d)", e.Code, e.Message, e.Field, e.Offset)
	}
	return fmt.Sprintf("%s: %s (offset=%d)", e.Code, e.Message, e.Offset)
}

// IsRecordError returns true if err is a RecordError.
// Uses errors.As to handle wrapped errors.
func IsRecordError(err error) bool {
	var re *RecordError
	return errors.As(err, &re)
}

// DecodeField reads a signed zoned-decimal field. All bytes but the last
// must be ASCII digits; the last is a digit or an overpunch character.
func DecodeField(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, &RecordError{Code: ErrCodeLength, Message: "empty field"}
	}
	if len(b) > 18 {
		return 0, &RecordError{Code: ErrCodeLength, Message: fmt.Sprintf("field of %d bytes is too wide", len(b))}
	}

	var n int64
	for i, c := range b[:len(b)-1] {
		if c < '0' || c > '9' {
			return 0, &RecordError{Code: ErrCodeDigit, Offset: i, Message: fmt.Sprintf("byte %q is not a digit", c)}
		}
		n = n*10 + int64(c-'0')
	}

	last := len(b) - 1
	digit, neg, err := decodeOverpunch(b[last])
	if err != nil {
		err.Offset = last
		return 0, err
	}
	n = n*10 + digit
	if neg {
		n = -n
	}
	return n, nil
}

func decodeOverpunch(c byte) (int64, bool, *RecordError) {
	if c >= '0' && c <= '9' {
		return int64(c - '0'), false, nil
	}
	for d := 0; d < 10; d++ {
		if positiveOverpunch[d] == c {
			return int64(d), false, nil
		}
		if negativeOverpunch[d] == c {
			return int64(d), true, nil
		}
	}
	return 0, false, &RecordError{Code: ErrCodeSign, Message: fmt.Sprintf("byte %q is not a sign overpunch", c)}
}

// EncodeField writes v as a signed zoned-decimal field of the given width.
// The sign is always overpunched, so zero is written with '{'.
func EncodeField(v int64, width int) ([]byte, error) {
	if width <= 0 || width > 18 {
		return nil, &RecordError{Code: ErrCodeLength, Message: fmt.Sprintf("invalid field width %d", width)}
	}

	neg := v < 0
	mag := v
	if neg {
		mag = -v
	}

	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte('0' + mag%10)
		mag /= 10
	}
	if mag != 0 {
		return nil, &RecordError{Code: ErrCodeOverflow, Message: fmt.Sprintf("%d does not fit in %d digits", v, width)}
	}

	d := out[width-1] - '0'
	if neg {
		out[width-1] = negativeOverpunch[d]
	} else {
		out[width-1] = positiveOverpunch[d]
	}
	return out, nil
}
