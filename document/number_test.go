package document

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_ParseOptionalDecimal(t *testing.T) {
	t.Parallel()

	t.Run("comma and dot separators", func(t *testing.T) {
		t.Parallel()

		testTable := []struct {
			input    string
			expected string
		}{
			{"43,0443", "43.0443"},
			{"43.0443", "43.0443"},
			{"6115,17", "6115.17"},
			{"0,99", "0.99"},
			{" 1,5 ", "1.5"},
		}

		for _, testCase := range testTable {
			t.Run(testCase.input, func(t *testing.T) {
				t.Parallel()

				v := parseOptionalDecimal(testCase.input)

				require.True(t, v.Valid)
				assert.True(t, v.Decimal.Equal(decimal.RequireFromString(testCase.expected)))
			})
		}
	})

	t.Run("blank and unparsable values are absent", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"", "   ", "abc", "1,2,3"} {
			assert.False(t, parseOptionalDecimal(input).Valid)
		}
	})
}

func TestNumber_ParseDecimal(t *testing.T) {
	t.Parallel()

	assert.True(t, parseDecimal("43,0443").Equal(decimal.RequireFromString("43.0443")))

	// The hourly feed never legitimately omits the field on a present
	// entry, so a blank value decodes as zero
	assert.True(t, parseDecimal("").Equal(decimal.Zero))
	assert.True(t, parseDecimal("garbage").Equal(decimal.Zero))
}

func TestNumber_ParseUnit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, parseUnit("100"))
	assert.Equal(t, 1, parseUnit(""))
	assert.Equal(t, 1, parseUnit("abc"))
	assert.Equal(t, 1, parseUnit("-5"))
}

func TestNumber_ParseSequence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, parseSequence("7"))
	assert.Equal(t, 0, parseSequence(""))
	assert.Equal(t, 0, parseSequence("-1"))
}
