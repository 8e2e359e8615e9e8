package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/fixed"
)

// Scenario defines a conformance test scenario: a list of adder calls and
// the outcomes they must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Policy is the overflow policy. Empty means "status".
	Policy string `yaml:"policy,omitempty"`

	// RunID is an optional fixed run ID for deterministic journals.
	// If empty, defaults to testutil.DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// Cases are executed in order.
	Cases []Case `yaml:"cases"`

	// Assertions validate the trace and journal after all cases ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Case is one adder call.
type Case struct {
	A Literal `yaml:"a"`
	B Literal `yaml:"b"`

	// Expect is the expected outcome. If nil, the case is only traced.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is the expected Result of a case.
type Expect struct {
	Sum Literal `yaml:"sum"`

	// Status defaults to StatusOK when omitted.
	Status *int `yaml:"status,omitempty"`
}

// Assertion validates the run as a whole.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Status is the status counted by status_count.
	Status int `yaml:"status,omitempty"`

	// Count is the expected number for status_count and journal_count.
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertAllOK        = "all_ok"
	AssertStatusCount  = "status_count"
	AssertCommutative  = "commutative"
	AssertJournalCount = "journal_count"
)

// Literal is a decimal literal as written in the scenario file.
// It captures the scalar's source text so bare numbers never pass through
// float64.
type Literal string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Literal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	*l = Literal(node.Value)
	return nil
}

// Amount parses the literal.
func (l Literal) Amount() (fixed.Amount, error) {
	return fixed.Parse(string(l))
}

// ExpectedStatus returns the expected status, defaulting to StatusOK.
func (e *Expect) ExpectedStatus() adder.Status {
	if e.Status == nil {
		return adder.StatusOK
	}
	return adder.Status(*e.Status)
}

// LoadScenario reads, schema-checks and parses a scenario YAML file.
// Returns an error if the file doesn't exist, fails the CUE schema,
// contains unknown fields, or holds literals that are not valid amounts.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario is LoadScenario for in-memory data.
func ParseScenario(data []byte) (*Scenario, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks what the schema cannot: that every literal is a
// representable amount and that assertions carry their parameters.
func validateScenario(s *Scenario) error {
	if _, err := adder.ParsePolicy(s.Policy); err != nil {
		return err
	}

	for i, c := range s.Cases {
		if _, err := c.A.Amount(); err != nil {
			return fmt.Errorf("cases[%d].a: %w", i, err)
		}
		if _, err := c.B.Amount(); err != nil {
			return fmt.Errorf("cases[%d].b: %w", i, err)
		}
		if c.Expect != nil {
			if _, err := c.Expect.Sum.Amount(); err != nil {
				return fmt.Errorf("cases[%d].expect.sum: %w", i, err)
			}
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertAllOK, AssertCommutative:
		case AssertStatusCount, AssertJournalCount:
			if a.Count < 0 {
				return fmt.Errorf("assertions[%d]: count must be non-negative for %s", i, a.Type)
			}
		default:
			return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, a.Type)
		}
	}

	return nil
}
