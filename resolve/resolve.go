// Package resolve implements the bounded backward search that turns a
// requested (date, hour) into the nearest published snapshot. Hour fallback
// always sweeps strictly descending within a day before the day is
// decremented, and every decremented day restarts from the latest slot.
package resolve

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/yusufcetin82/tcmb-xml-rates/cache"
	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
	"github.com/yusufcetin82/tcmb-xml-rates/document"
	"github.com/yusufcetin82/tcmb-xml-rates/feed"
)

// dayRetryBudget bounds how many calendar days past the requested one the
// engine walks backward before declaring failure
const dayRetryBudget = 15

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var ErrNoData = errors.New("no published data within the fallback window")

// NoDataError is the terminal failure of an exhausted fallback search
type NoDataError struct {
	LastErr  error // the last underlying error, kept for diagnostics
	Attempts int   // total transport attempts made
}

func (e *NoDataError) Error() string {
	if e.LastErr == nil {
		return fmt.Sprintf(
			"no published data within the fallback window after %d attempts",
			e.Attempts,
		)
	}

	return fmt.Sprintf(
		"no published data within the fallback window after %d attempts, last error: %s",
		e.Attempts,
		e.LastErr,
	)
}

func (e *NoDataError) Is(target error) bool {
	return target == ErrNoData
}

func (e *NoDataError) Unwrap() error {
	return e.LastErr
}

// Request carries the per-call parameters of a resolution
type Request struct {
	// Date is the requested bulletin day. The zero value means "today" in
	// the publication timezone.
	Date calendar.Date

	// Slot is the requested publication hour (hourly feed only). Empty
	// means the current publishable slot.
	Slot calendar.Slot

	// NoDayFallback disables walking back across calendar days. A missing
	// document then surfaces as a typed failure instead of being recovered.
	NoDayFallback bool

	// NoHourFallback disables the descending hour sweep within a day
	// (hourly feed only)
	NoHourFallback bool

	// NoCache bypasses the snapshot cache for both lookups and writes
	NoCache bool
}

// dayBudget computes the bounded day-retry budget for the request
func (r Request) dayBudget() int {
	if r.NoDayFallback {
		return 0
	}

	return dayRetryBudget
}

// Engine resolves rate snapshots by walking the (day, hour) search space
// backward until a published document is found or the budget is exhausted
type Engine struct {
	fetcher feed.Fetcher
	logger  *slog.Logger
	baseURL string
	now     func() time.Time

	daily  *cache.Store[*document.DailySnapshot]
	hourly *cache.Store[*document.HourlySnapshot]
}

// New creates a new resolution engine around the given fetcher
func New(fetcher feed.Fetcher, opts ...Option) *Engine {
	e := &Engine{
		fetcher: fetcher,
		logger:  noopLogger,
		baseURL: feed.DefaultBaseURL,
		now:     time.Now,
		daily:   cache.NewStore[*document.DailySnapshot](),
		hourly:  cache.NewStore[*document.HourlySnapshot](),
	}

	// Apply the options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ClearCache drops all cached snapshots
func (e *Engine) ClearCache() {
	e.daily.Clear()
	e.hourly.Clear()
}
