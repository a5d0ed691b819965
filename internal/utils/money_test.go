package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "150.00", FormatMoney(150))
	assert.Equal(t, "60.50", FormatMoney(60.5))
	assert.Equal(t, "0.13", FormatMoney(0.125001))
}

func TestParseCost(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"85", 85, true},
		{" 85.00 ", 85, true},
		{"$1,250.50", 1250.5, true},
		{"-$5", -5, true},
		{"", 0, false},
		{"   ", 0, false},
		{"N/A", 0, false},
		{"NaN", 0, false},
		{"null", 0, false},
	}
	for _, tc := range cases {
		got, ok, err := ParseCost(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"$", "12abc", "inf", "+Inf", "-Infinity", "1e400", "nAn"} {
		_, _, err := ParseCost(bad)
		assert.Error(t, err, bad)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
	assert.Empty(t, SplitList(""))
}

func TestSafeFilenamePart(t *testing.T) {
	assert.Equal(t, "NA", SafeFilenamePart("  "))
	assert.Equal(t, "a_b_c", SafeFilenamePart("a b/c"))
}

func TestIsMissingValue(t *testing.T) {
	for _, v := range []string{"", "  ", "N/A", " NA ", "#N/A", "NaN", "nan", "null", "NULL", "None", "<NA>"} {
		assert.True(t, IsMissingValue(v), v)
	}
	for _, v := range []string{"DSP1", "FLEX", "na", "none", "0"} {
		assert.False(t, IsMissingValue(v), v)
	}
}
