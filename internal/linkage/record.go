package linkage

import (
	"errors"
	"fmt"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/fixed"
)

// Field layout.
const (
	AmountWidth = fixed.Digits
	StatusWidth = 4

	offsetA      = 0
	offsetB      = offsetA + AmountWidth
	offsetSum    = offsetB + AmountWidth
	offsetStatus = offsetSum + AmountWidth

	// RecordLen is the total record size in bytes.
	RecordLen = offsetStatus + StatusWidth
)

// Params holds the four parameters of one call.
type Params struct {
	A      fixed.Amount
	B      fixed.Amount
	Sum    fixed.Amount
	Status adder.Status
}

// Decode parses all four fields of a record.
func Decode(record []byte) (Params, error) {
	if err := checkLength(record); err != nil {
		return Params{}, err
	}

	a, b, err := decodeInputs(record)
	if err != nil {
		return Params{}, err
	}

	sum, err := decodeAmount(record, "sum", offsetSum)
	if err != nil {
		return Params{}, err
	}

	status, err := decodeAt(record, "status", offsetStatus, StatusWidth)
	if err != nil {
		return Params{}, err
	}

	return Params{A: a, B: b, Sum: sum, Status: adder.Status(status)}, nil
}

// Encode writes p as a record. Fails if a field does not fit its width.
func Encode(p Params) ([]byte, error) {
	out := make([]byte, 0, RecordLen)
	fields := []struct {
		name  string
		value int64
		width int
	}{
		{"a", p.A.Units(), AmountWidth},
		{"b", p.B.Units(), AmountWidth},
		{"sum", p.Sum.Units(), AmountWidth},
		{"status", int64(p.Status), StatusWidth},
	}

	for _, f := range fields {
		enc, err := EncodeField(f.value, f.width)
		if err != nil {
			return nil, withField(err, f.name, len(out))
		}
		out = append(out, enc...)
	}
	return out, nil
}

// Process runs one call: it reads a and b from the record, adds them with
// ad, and returns a new record with the sum and status filled in. Whatever
// the input held in the output positions is ignored.
func Process(ad *adder.Adder, record []byte) ([]byte, error) {
	if err := checkLength(record); err != nil {
		return nil, err
	}

	a, b, err := decodeInputs(record)
	if err != nil {
		return nil, err
	}

	res := ad.Add(a, b)
	return Encode(Params{A: a, B: b, Sum: res.Sum, Status: res.Status})
}

// Call is the out-parameter form of the routine: it writes the sum and
// status through the supplied pointers using the default policy. Nil
// pointers are skipped.
func Call(a, b fixed.Amount, sum *fixed.Amount, status *adder.Status) {
	res := adder.Add(a, b)
	if sum != nil {
		*sum = res.Sum
	}
	if status != nil {
		*status = res.Status
	}
}

func checkLength(record []byte) error {
	if len(record) != RecordLen {
		return &RecordError{
			Code:    ErrCodeLength,
			Offset:  len(record),
			Message: fmt.Sprintf("record is %d bytes, want %d", len(record), RecordLen),
		}
	}
	return nil
}

func decodeInputs(record []byte) (fixed.Amount, fixed.Amount, error) {
	a, err := decodeAmount(record, "a", offsetA)
	if err != nil {
		return 0, 0, err
	}
	b, err := decodeAmount(record, "b", offsetB)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// decodeAmount never fails on range: nine zoned digits cannot exceed the
// picture.
func decodeAmount(record []byte, name string, offset int) (fixed.Amount, error) {
	v, err := decodeAt(record, name, offset, AmountWidth)
	if err != nil {
		return 0, err
	}
	return fixed.Amount(v), nil
}

func decodeAt(record []byte, name string, offset, width int) (int64, error) {
	v, err := DecodeField(record[offset : offset+width])
	if err != nil {
		return 0, withField(err, name, offset)
	}
	return v, nil
}

// withField tags a field-level RecordError with its name and rebases the
// offset onto the record.
func withField(err error, name string, base int) error {
	var re *RecordError
	if errors.As(err, &re) {
		return &RecordError{Code: re.Code, Field: name, Offset: base + re.Offset, Message: re.Message}
	}
	return fmt.Errorf("field %s: %w", name, err)
}
