package adder

import (
	"fmt"

	"github.com/roach88/fpadd/internal/fixed"
)

// Policy selects how an out-of-range sum is reported.
type Policy string

const (
	// PolicyStatus reports StatusSizeError with a zero sum.
	PolicyStatus Policy = "status"

	// PolicySaturate clamps the sum to Max or Min and reports StatusOK.
	PolicySaturate Policy = "saturate"

	// PolicyTruncate drops high-order digits, keeps the sign, and reports
	// StatusOK.
	PolicyTruncate Policy = "truncate"
)

// ValidPolicies lists the accepted policy names.
var ValidPolicies = []Policy{PolicyStatus, PolicySaturate, PolicyTruncate}

// ParsePolicy converts a name into a Policy.
// The empty string selects PolicyStatus.
func ParsePolicy(name string) (Policy, error) {
	if name == "" {
		return PolicyStatus, nil
	}
	for _, p := range ValidPolicies {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid overflow policy %q: must be one of %v", name, ValidPolicies)
}

// apply maps an out-of-range sum to a Result.
func (p Policy) apply(sum fixed.Amount) Result {
	switch p {
	case PolicySaturate:
		if sum < 0 {
			return Result{Sum: fixed.Min, Status: StatusOK}
		}
		return Result{Sum: fixed.Max, Status: StatusOK}
	case PolicyTruncate:
		// Go's % keeps the sign of the dividend.
		return Result{Sum: fixed.Amount(sum.Units() % fixed.Modulus), Status: StatusOK}
	default:
		return Result{Sum: fixed.Zero, Status: StatusSizeError}
	}
}
