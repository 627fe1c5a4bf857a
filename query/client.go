// Package query is the public façade of the module: stateless lookups,
// quote-category filtering, and cross-rate conversion composed on top of
// the resolution engine.
package query

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/yusufcetin82/tcmb-xml-rates/document"
	"github.com/yusufcetin82/tcmb-xml-rates/feed"
	"github.com/yusufcetin82/tcmb-xml-rates/resolve"
)

// LocalCurrency is the quote currency of the feed
const LocalCurrency = "TRY"

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	ErrRateNotFound        = errors.New("rate not found")
)

// Client exposes the rate feed through stateless query operations
type Client struct {
	engine *resolve.Engine
}

type settings struct {
	fetcher feed.Fetcher
	logger  *slog.Logger
	baseURL string
	now     func() time.Time
}

type Option func(s *settings)

// WithFetcher specifies the transport fetcher for the client
func WithFetcher(f feed.Fetcher) Option {
	return func(s *settings) {
		s.fetcher = f
	}
}

// WithLogger specifies the logger for the client
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithBaseURL specifies the feed base URL for the client
func WithBaseURL(url string) Option {
	return func(s *settings) {
		s.baseURL = url
	}
}

// WithClock specifies the wall-clock source for the client
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// New creates a new feed client
func New(opts ...Option) *Client {
	s := &settings{
		fetcher: feed.NewHTTPFetcher(feed.DefaultTimeout),
		logger:  noopLogger,
		baseURL: feed.DefaultBaseURL,
		now:     time.Now,
	}

	// Apply the options
	for _, opt := range opts {
		opt(s)
	}

	return &Client{
		engine: resolve.New(
			s.fetcher,
			resolve.WithLogger(s.logger),
			resolve.WithBaseURL(s.baseURL),
			resolve.WithClock(s.now),
		),
	}
}

// ClearCache drops all cached snapshots. Meant for test isolation.
func (c *Client) ClearCache() {
	c.engine.ClearCache()
}

// Rates returns the full rate set of the resolved daily bulletin,
// optionally narrowed by quote category
func (c *Client) Rates(ctx context.Context, opts Options) ([]document.Rate, error) {
	snapshot, err := c.resolveDaily(ctx, opts)
	if err != nil {
		return nil, err
	}

	return filterRates(snapshot.Rates, opts.Filter), nil
}

// Rate returns the daily record for a single currency code. The lookup is
// case-insensitive; a code missing from the resolved bulletin yields nil,
// not an error.
func (c *Client) Rate(
	ctx context.Context,
	code string,
	opts Options,
) (*document.Rate, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	snapshot, err := c.resolveDaily(ctx, opts)
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

// Codes lists the currency codes of the resolved daily bulletin
func (c *Client) Codes(ctx context.Context, opts Options) ([]string, error) {
	rates, err := c.Rates(ctx, opts)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(rates))
	for _, r := range rates {
		codes = append(codes, r.Code)
	}

	return codes, nil
}

// RawDaily returns the resolved daily bulletin exactly as published
func (c *Client) RawDaily(ctx context.Context, opts Options) ([]byte, error) {
	snapshot, err := c.resolveDaily(ctx, opts)
	if err != nil {
		return nil, err
	}

	return snapshot.Raw, nil
}

func (c *Client) resolveDaily(
	ctx context.Context,
	opts Options,
) (*document.DailySnapshot, error) {
	req, err := opts.request()
	if err != nil {
		return nil, err
	}

	return c.engine.ResolveDaily(ctx, req)
}

// filterRates narrows a daily rate set by quote category. An entry passes
// a category filter if either of the category's quote fields is present.
func filterRates(rates []document.Rate, f Filter) []document.Rate {
	if f == FilterAll {
		return rates
	}

	out := make([]document.Rate, 0, len(rates))

	for _, r := range rates {
		switch f {
		case FilterForex:
			if r.ForexBuying.Valid || r.ForexSelling.Valid {
				out = append(out, r)
			}
		case FilterBanknote:
			if r.BanknoteBuying.Valid || r.BanknoteSelling.Valid {
				out = append(out, r)
			}
		}
	}

	return out
}

// normalizeCode upper-cases and validates a caller-supplied currency code
func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrInvalidCurrencyCode
	}

	return code, nil
}
