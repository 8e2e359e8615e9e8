package adder

import (
	"fmt"

	"github.com/roach88/fpadd/internal/fixed"
)

// Status is the four-digit signed return code, picture S9(4).
type Status int16

const (
	// StatusOK reports a computed, in-range sum.
	StatusOK Status = 0

	// StatusSizeError reports a sum that does not fit the output picture.
	StatusSizeError Status = 8
)

// OK reports whether s is StatusOK.
func (s Status) OK() bool {
	return s == StatusOK
}

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusSizeError:
		return "SIZE_ERROR"
	default:
		return fmt.Sprintf("STATUS_%d", int16(s))
	}
}

// Result is the output of one call: the sum and the status code.
type Result struct {
	Sum    fixed.Amount `json:"sum"`
	Status Status       `json:"status"`
}

// Adder adds fixed-point amounts under an overflow policy.
type Adder struct {
	policy Policy
}

// Option configures an Adder.
type Option func(*Adder)

// WithPolicy sets the overflow policy.
func WithPolicy(p Policy) Option {
	return func(a *Adder) {
		a.policy = p
	}
}

// New creates an Adder. Without options it uses PolicyStatus.
func New(opts ...Option) *Adder {
	a := &Adder{policy: PolicyStatus}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Policy returns the overflow policy in effect.
func (a *Adder) Policy() Policy {
	return a.policy
}

// Add returns a+b and a status code.
//
// The addition itself is exact: both operands are hundredths in an int64,
// so the intermediate sum cannot overflow for any in-range input.
// An operand outside the picture breaks the calling contract and always
// yields StatusSizeError with a zero sum, whatever the policy.
func (a *Adder) Add(x, y fixed.Amount) Result {
	if !x.InRange() || !y.InRange() {
		return Result{Sum: fixed.Zero, Status: StatusSizeError}
	}
	sum := x + y
	if sum.InRange() {
		return Result{Sum: sum, Status: StatusOK}
	}
	return a.policy.apply(sum)
}

// AddChecked returns a+b, or a *SizeError when the sum does not fit
// regardless of the configured policy.
func (a *Adder) AddChecked(x, y fixed.Amount) (fixed.Amount, error) {
	if !x.InRange() {
		return 0, NewOperandError("a", x)
	}
	if !y.InRange() {
		return 0, NewOperandError("b", y)
	}
	sum := x + y
	if !sum.InRange() {
		return 0, NewSizeError(x, y, sum)
	}
	return sum, nil
}

var defaultAdder = New()

// Add adds two amounts with the default policy (PolicyStatus).
func Add(x, y fixed.Amount) Result {
	return defaultAdder.Add(x, y)
}

// AddChecked adds two amounts and returns a *SizeError on overflow.
func AddChecked(x, y fixed.Amount) (fixed.Amount, error) {
	return defaultAdder.AddChecked(x, y)
}
