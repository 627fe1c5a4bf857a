package document

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeDecimalSeparator rewrites a comma decimal separator to a dot,
// so values from both feed locales parse the same way
func normalizeDecimalSeparator(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

// parseOptionalDecimal parses a quote field that may legitimately be blank.
// A blank or unparsable value decodes as absent, never as zero.
func parseOptionalDecimal(s string) decimal.NullDecimal {
	v := normalizeDecimalSeparator(s)
	if v == "" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{
		Decimal: d,
		Valid:   true,
	}
}

// parseDecimal parses a quote field the feed always publishes on a present
// entry; a missing or blank value decodes as zero
func parseDecimal(s string) decimal.Decimal {
	v := normalizeDecimalSeparator(s)
	if v == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}

	return d
}

// parseUnit parses an entry's unit size, defaulting to 1
func parseUnit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 1
	}

	return n
}

// parseSequence parses an entry's publication sequence number, defaulting to 0
func parseSequence(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}

	return n
}
