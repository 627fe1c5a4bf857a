package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
	"github.com/yusufcetin82/tcmb-xml-rates/document"
	"github.com/yusufcetin82/tcmb-xml-rates/feed"
)

// ResolveHourly resolves the hourly snapshot closest to the requested date
// and publication slot. Within a day the engine sweeps strictly earlier
// slots before it ever decrements the day.
func (e *Engine) ResolveHourly(
	ctx context.Context,
	req Request,
) (*document.HourlySnapshot, error) {
	target := req.Date
	if target.IsZero() {
		target = calendar.DateOf(e.now())
	}

	slot := req.Slot
	if slot == "" {
		slot = calendar.CurrentSlot(e.now())
	}

	var (
		budget   = req.dayBudget()
		attempts int
		lastErr  error
	)

	for day := 0; day <= budget; day++ {
		candidates := []calendar.Slot{slot}
		if !req.NoHourFallback {
			candidates = calendar.SlotsDescendingFrom(slot)
		}

		for _, candidate := range candidates {
			url := feed.HourlyKey(target, candidate).URL(e.baseURL)

			if !req.NoCache {
				if snapshot, ok := e.hourly.Get(url); ok {
					e.logger.Debug("hourly cache hit", "url", url)

					return snapshot, nil
				}
			}

			attempts++

			raw, err := e.fetcher.Fetch(ctx, url)

			switch {
			case err == nil:
				// Malformed documents are fatal, never silently skipped
				snapshot, decodeErr := document.DecodeHourly(raw)
				if decodeErr != nil {
					return nil, decodeErr
				}

				if !req.NoCache {
					e.hourly.Set(url, snapshot, e.hourlyTTL(snapshot.Date, snapshot.Slot))
				}

				e.logger.Debug(
					"hourly snapshot resolved",
					"date", snapshot.Date,
					"slot", snapshot.Slot,
					"attempts", attempts,
				)

				return snapshot, nil
			case errors.Is(err, feed.ErrNotFound):
				// Expected for slots that haven't been published;
				// move on to the next candidate
				lastErr = err
			case ctx.Err() != nil:
				// Cancellation is terminal, never "try the next candidate"
				return nil, fmt.Errorf("hourly fetch aborted: %w", ctx.Err())
			default:
				if req.NoDayFallback {
					return nil, fmt.Errorf("unable to fetch hourly snapshot: %w", err)
				}

				// A transient failure on one candidate should not sink the
				// whole search while budget remains
				lastErr = err

				e.logger.Warn(
					"hourly fetch failed, continuing fallback",
					"url", url,
					"err", err,
				)
			}
		}

		// Earlier days always restart from the latest publication slot;
		// only the first day honors the caller's literal hour
		target = target.Previous()
		slot = calendar.LatestSlot()
	}

	return nil, &NoDataError{
		Attempts: attempts,
		LastErr:  lastErr,
	}
}
