package query

import (
	"context"
	"strings"

	"github.com/yusufcetin82/tcmb-xml-rates/document"
)

// HourlyRates returns the full record set of the resolved hourly snapshot
func (c *Client) HourlyRates(
	ctx context.Context,
	opts Options,
) ([]document.HourlyRate, error) {
	snapshot, err := c.resolveHourly(ctx, opts)
	if err != nil {
		return nil, err
	}

	return snapshot.Rates, nil
}

// HourlyRate returns the hourly record for a single currency or metal code.
// The lookup is case-insensitive; a code missing from the resolved snapshot
// yields nil, not an error.
func (c *Client) HourlyRate(
	ctx context.Context,
	code string,
	opts Options,
) (*document.HourlyRate, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	snapshot, err := c.resolveHourly(ctx, opts)
	if err != nil {
		return nil, err
	}

	for i := range snapshot.Rates {
		if strings.EqualFold(snapshot.Rates[i].Code, code) {
			return &snapshot.Rates[i], nil
		}
	}

	return nil, nil
}

// Gold returns the hourly gold record
func (c *Client) Gold(ctx context.Context, opts Options) (*document.HourlyRate, error) {
	return c.HourlyRate(ctx, document.GoldCode, opts)
}

// Silver returns the hourly silver record
func (c *Client) Silver(ctx context.Context, opts Options) (*document.HourlyRate, error) {
	return c.HourlyRate(ctx, document.SilverCode, opts)
}

// PreciousMetals projects the resolved hourly snapshot onto the two known
// metal codes
func (c *Client) PreciousMetals(
	ctx context.Context,
	opts Options,
) ([]document.HourlyRate, error) {
	rates, err := c.HourlyRates(ctx, opts)
	if err != nil {
		return nil, err
	}

	metals := make([]document.HourlyRate, 0, 2)

	for _, r := range rates {
		if r.Code == document.GoldCode || r.Code == document.SilverCode {
			metals = append(metals, r)
		}
	}

	return metals, nil
}

func (c *Client) resolveHourly(
	ctx context.Context,
	opts Options,
) (*document.HourlySnapshot, error) {
	req, err := opts.request()
	if err != nil {
		return nil, err
	}

	return c.engine.ResolveHourly(ctx, req)
}
