package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
	"github.com/yusufcetin82/tcmb-xml-rates/document"
	"github.com/yusufcetin82/tcmb-xml-rates/feed"
)

// ResolveDaily resolves the daily bulletin closest to the requested date,
// walking backward across calendar days within the retry budget
func (e *Engine) ResolveDaily(
	ctx context.Context,
	req Request,
) (*document.DailySnapshot, error) {
	var (
		target       = req.Date
		implicitDate = target.IsZero()
	)

	if implicitDate {
		target = calendar.DateOf(e.now())
	}

	var (
		budget   = req.dayBudget()
		attempts int
		lastErr  error
	)

	for day := 0; day <= budget; day++ {
		key := feed.DailyKey(target)
		if implicitDate && day == 0 {
			// The feed exposes the most recent bulletin under a well-known
			// path. Only the first attempt of an implicit-date search uses
			// it; every later candidate is an explicit-date path.
			key = feed.LatestDailyKey()
		}

		url := key.URL(e.baseURL)

		if !req.NoCache {
			if snapshot, ok := e.daily.Get(url); ok {
				e.logger.Debug("daily cache hit", "url", url)

				return snapshot, nil
			}
		}

		attempts++

		raw, err := e.fetcher.Fetch(ctx, url)

		switch {
		case err == nil:
			// Malformed documents are fatal, never silently skipped
			snapshot, decodeErr := document.DecodeDaily(raw)
			if decodeErr != nil {
				return nil, decodeErr
			}

			if !req.NoCache {
				e.daily.Set(url, snapshot, e.dailyTTL(snapshot.Date))
			}

			e.logger.Debug(
				"daily bulletin resolved",
				"date", snapshot.Date,
				"attempts", attempts,
			)

			return snapshot, nil
		case errors.Is(err, feed.ErrNotFound):
			// Expected for unpublished days (weekends, holidays);
			// move on to the next candidate
			lastErr = err
		case ctx.Err() != nil:
			// Cancellation is terminal, never "try the next candidate"
			return nil, fmt.Errorf("daily fetch aborted: %w", ctx.Err())
		default:
			if req.NoDayFallback {
				return nil, fmt.Errorf("unable to fetch daily bulletin: %w", err)
			}

			// A transient failure on one candidate should not sink the
			// whole search while budget remains
			lastErr = err

			e.logger.Warn(
				"daily fetch failed, continuing fallback",
				"url", url,
				"err", err,
			)
		}

		target = target.Previous()
	}

	return nil, &NoDataError{
		Attempts: attempts,
		LastErr:  lastErr,
	}
}
