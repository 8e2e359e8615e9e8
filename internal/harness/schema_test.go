package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "minimal",
			yaml: `
name: ok
description: "one case"
cases:
  - a: "1"
    b: "2"
`,
		},
		{
			name: "bare numbers",
			yaml: `
name: ok
description: "numbers"
cases:
  - a: 1.5
    b: -2
    expect:
      sum: -0.5
      status: 0
`,
		},
		{
			name: "missing name",
			yaml: `
description: "no name"
cases:
  - a: "1"
    b: "2"
`,
			wantErr: true,
		},
		{
			name: "missing description",
			yaml: `
name: nodesc
cases:
  - a: "1"
    b: "2"
`,
			wantErr: true,
		},
		{
			name: "no cases",
			yaml: `
name: empty
description: "no cases"
cases: []
`,
			wantErr: true,
		},
		{
			name: "unknown top-level field",
			yaml: `
name: extra
description: "extra field"
flow: []
cases:
  - a: "1"
    b: "2"
`,
			wantErr: true,
		},
		{
			name: "unknown policy",
			yaml: `
name: policy
description: "bad policy"
policy: round
cases:
  - a: "1"
    b: "2"
`,
			wantErr: true,
		},
		{
			name: "non-numeric amount",
			yaml: `
name: amount
description: "bad amount"
cases:
  - a: "one"
    b: "2"
`,
			wantErr: true,
		},
		{
			name: "missing operand",
			yaml: `
name: operand
description: "no b"
cases:
  - a: "1"
`,
			wantErr: true,
		},
		{
			name: "unknown assertion",
			yaml: `
name: assertion
description: "bad assertion"
cases:
  - a: "1"
    b: "2"
assertions:
  - type: trace_contains
`,
			wantErr: true,
		},
		{
			name: "negative count",
			yaml: `
name: count
description: "negative count"
cases:
  - a: "1"
    b: "2"
assertions:
  - type: journal_count
    count: -1
`,
			wantErr: true,
		},
		{
			name: "bad scenario name",
			yaml: `
name: "has spaces"
description: "name must be a file-safe token"
cases:
  - a: "1"
    b: "2"
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchema([]byte(tt.yaml))
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var se *SchemaError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func TestValidateSchema_Empty(t *testing.T) {
	err := ValidateSchema([]byte(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty scenario")
}

func TestSchemaError_Format(t *testing.T) {
	e := &SchemaError{Message: "field not allowed"}
	assert.Equal(t, "schema: field not allowed", e.Error())
}
