package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yusufcetin82/tcmb-xml-rates/document"
)

// QuoteField selects which of the four daily quote fields a conversion uses
type QuoteField int

const (
	// QuoteDefault uses forex buying on the source leg and forex selling
	// on the target leg
	QuoteDefault QuoteField = iota
	QuoteForexBuying
	QuoteForexSelling
	QuoteBanknoteBuying
	QuoteBanknoteSelling
)

// Convert converts an amount between two currencies using the resolved
// daily bulletin. Cross pairs are routed through the local currency:
// the amount is multiplied by the source's buy-side quote and divided by
// the target's sell-side quote. An explicit Quote option applies the same
// field to both legs.
func (c *Client) Convert(
	ctx context.Context,
	amount decimal.Decimal,
	from, to string,
	opts Options,
) (decimal.Decimal, error) {
	from, err := normalizeCode(from)
	if err != nil {
		return decimal.Decimal{}, err
	}

	to, err = normalizeCode(to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if from == to {
		return amount, nil
	}

	snapshot, err := c.resolveDaily(ctx, opts)
	if err != nil {
		return decimal.Decimal{}, err
	}

	index := make(map[string]*document.Rate, len(snapshot.Rates))
	for i := range snapshot.Rates {
		index[strings.ToUpper(snapshot.Rates[i].Code)] = &snapshot.Rates[i]
	}

	buyField, sellField := QuoteForexBuying, QuoteForexSelling
	if opts.Quote != QuoteDefault {
		buyField, sellField = opts.Quote, opts.Quote
	}

	quote := func(code string, field QuoteField) (decimal.Decimal, error) {
		rate, ok := index[code]
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrRateNotFound, code)
		}

		value := quoteValue(rate, field)
		if !value.Valid {
			return decimal.Decimal{}, fmt.Errorf(
				"%w: %s has no quoted value",
				ErrRateNotFound,
				code,
			)
		}

		return value.Decimal, nil
	}

	switch {
	case from == LocalCurrency:
		sell, err := quote(to, sellField)
		if err != nil {
			return decimal.Decimal{}, err
		}

		return amount.Div(sell), nil
	case to == LocalCurrency:
		buy, err := quote(from, buyField)
		if err != nil {
			return decimal.Decimal{}, err
		}

		return amount.Mul(buy), nil
	default:
		buy, err := quote(from, buyField)
		if err != nil {
			return decimal.Decimal{}, err
		}

		sell, err := quote(to, sellField)
		if err != nil {
			return decimal.Decimal{}, err
		}

		return amount.Mul(buy).Div(sell), nil
	}
}

// quoteValue extracts the selected quote field of a rate record
func quoteValue(rate *document.Rate, field QuoteField) decimal.NullDecimal {
	switch field {
	case QuoteForexSelling:
		return rate.ForexSelling
	case QuoteBanknoteBuying:
		return rate.BanknoteBuying
	case QuoteBanknoteSelling:
		return rate.BanknoteSelling
	default:
		return rate.ForexBuying
	}
}
