package linkage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fpadd/internal/adder"
	"github.com/roach88/fpadd/internal/fixed"
)

func TestDecodeField(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"000000525", 525},
		{"00000052E", 525},
		{"00000052N", -525},
		{"00000031{", 310},
		{"00000000}", 0},
		{"99999999I", 999999999},
		{"99999999R", -999999999},
		{"000H", 8},
		{"7", 7},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecodeField([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeFieldErrors(t *testing.T) {
	tests := []struct {
		in     string
		code   RecordErrorCode
		offset int
	}{
		{"", ErrCodeLength, 0},
		{"00 000525", ErrCodeDigit, 2},
		{"0000005-5", ErrCodeDigit, 7},
		{"00000052z", ErrCodeSign, 8},
		{"0123456789012345678", ErrCodeLength, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := DecodeField([]byte(tt.in))
			require.Error(t, err)

			var re *RecordError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.code, re.Code)
			assert.Equal(t, tt.offset, re.Offset)
		})
	}
}

func TestEncodeField(t *testing.T) {
	tests := []struct {
		v     int64
		width int
		want  string
	}{
		{-525, 9, "00000052N"},
		{310, 9, "00000031{"},
		{0, 9, "00000000{"},
		{999999999, 9, "99999999I"},
		{8, 4, "000H"},
		{-1, 4, "000J"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := EncodeField(tt.v, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			back, err := DecodeField(got)
			require.NoError(t, err)
			assert.Equal(t, tt.v, back)
		})
	}
}

func TestEncodeFieldErrors(t *testing.T) {
	_, err := EncodeField(10000, 4)
	var re *RecordError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeOverflow, re.Code)

	_, err = EncodeField(1, 0)
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeLength, re.Code)
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name   string
		policy adder.Policy
		in     string
		want   string
	}{
		{
			name:   "sign handling",
			policy: adder.PolicyStatus,
			in:     "00000052N00000031{00000000{000{",
			want:   "00000052N00000031{00000021N000{",
		},
		{
			name:   "output positions ignored",
			policy: adder.PolicyStatus,
			in:     "00000000A00000000B?????????????",
			want:   "00000000A00000000B00000000C000{",
		},
		{
			name:   "overflow status",
			policy: adder.PolicyStatus,
			in:     "99999999I00000000A00000000{000{",
			want:   "99999999I00000000A00000000{000H",
		},
		{
			name:   "overflow saturate",
			policy: adder.PolicySaturate,
			in:     "99999999I00000000A00000000{000{",
			want:   "99999999I00000000A99999999I000{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.in, RecordLen)
			got, err := Process(adder.New(adder.WithPolicy(tt.policy)), []byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestProcessErrors(t *testing.T) {
	ad := adder.New()

	_, err := Process(ad, []byte("short"))
	var re *RecordError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeLength, re.Code)

	_, err = Process(ad, []byte("00000000A00000x00B00000000{000{"))
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeDigit, re.Code)
	assert.Equal(t, "b", re.Field)
	assert.Equal(t, 14, re.Offset)
	assert.Contains(t, re.Error(), "field=b")
	assert.True(t, IsRecordError(err))
}

func TestDecodeEncodeRecord(t *testing.T) {
	p := Params{
		A:      fixed.MustParse("-5.25"),
		B:      fixed.MustParse("3.10"),
		Sum:    fixed.MustParse("-2.15"),
		Status: adder.StatusOK,
	}

	rec, err := Encode(p)
	require.NoError(t, err)
	assert.Equal(t, "00000052N00000031{00000021N000{", string(rec))

	back, err := Decode(rec)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestDecodeRejectsBadStatus(t *testing.T) {
	_, err := Decode([]byte("00000000A00000000B00000000C00?{"))
	var re *RecordError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "status", re.Field)
	assert.Equal(t, 29, re.Offset)
}

func TestEncodeRejectsOutOfRangeAmount(t *testing.T) {
	_, err := Encode(Params{A: fixed.Max + 1})
	var re *RecordError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeOverflow, re.Code)
	assert.Equal(t, "a", re.Field)
}

func TestCall(t *testing.T) {
	var sum fixed.Amount
	status := adder.Status(-1)

	Call(fixed.MustParse("0.01"), fixed.MustParse("0.02"), &sum, &status)
	assert.Equal(t, fixed.MustParse("0.03"), sum)
	assert.Equal(t, adder.StatusOK, status)

	Call(fixed.Max, fixed.MustParse("0.01"), &sum, &status)
	assert.Equal(t, fixed.Zero, sum)
	assert.Equal(t, adder.StatusSizeError, status)

	assert.NotPanics(t, func() { Call(fixed.Zero, fixed.Zero, nil, nil) })
}
