package resolve

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
	"github.com/yusufcetin82/tcmb-xml-rates/document"
	"github.com/yusufcetin82/tcmb-xml-rates/feed"
)

const testBaseURL = "https://feed.test/kurlar"

// dailyBody renders a minimal valid daily bulletin for the given date
func dailyBody(date calendar.Date) []byte {
	usDate := fmt.Sprintf("%02d/%02d/%04d", date.Month, date.Day, date.Year)

	return fmt.Appendf(nil,
		`<Tarih_Date Tarih="%02d.%02d.%04d" Date="%s" Bulten_No="2026/1">
			<Currency Kod="USD" CurrencyCode="USD">
				<Unit>1</Unit>
				<Isim>ABD DOLARI</Isim>
				<CurrencyName>US DOLLAR</CurrencyName>
				<ForexBuying>43,0443</ForexBuying>
				<ForexSelling>43,1219</ForexSelling>
			</Currency>
		</Tarih_Date>`,
		date.Day, date.Month, date.Year, usDate,
	)
}

// hourlyBody renders a minimal valid hourly snapshot for the given date
// and publication slot
func hourlyBody(date calendar.Date, slot calendar.Slot) []byte {
	return fmt.Appendf(nil,
		`<tcmb_saatlik>
			<baslik>
				<olusturma_zamani>%s %s:00</olusturma_zamani>
			</baslik>
			<kur_listesi tarih="%d-%d-%d" saat="%s">
				<kur>
					<baz>TRY</baz>
					<kod>USD</kod>
					<birim>1</birim>
					<alis>43,0443</alis>
					<sira>1</sira>
				</kur>
			</kur_listesi>
		</tcmb_saatlik>`,
		date.ISO(), slot, date.Year, date.Month, date.Day, slot,
	)
}

// fixedClock returns a clock frozen at the given instant in the
// publication timezone
func fixedClock(year int, month time.Month, day, hour, minute int) func() time.Time {
	at := time.Date(year, month, day, hour, minute, 0, 0, calendar.Ankara)

	return func() time.Time {
		return at
	}
}

func TestEngine_ResolveDaily(t *testing.T) {
	t.Parallel()

	t.Run("implicit date tries the latest bulletin path first", func(t *testing.T) {
		t.Parallel()

		var (
			urls []string

			published = testBaseURL + "/202601/06012026.xml"

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					urls = append(urls, url)

					if url == published {
						return dailyBody(calendar.Date{Year: 2026, Month: 1, Day: 6}), nil
					}

					return nil, feed.ErrNotFound
				},
			}
		)

		e := New(
			fetcher,
			WithBaseURL(testBaseURL),
			WithClock(fixedClock(2026, time.January, 7, 12, 0)),
		)

		snapshot, err := e.ResolveDaily(context.Background(), Request{})

		require.NoError(t, err)
		require.NotNil(t, snapshot)

		assert.Equal(t, "2026-01-06", snapshot.Date)
		assert.Equal(
			t,
			[]string{
				testBaseURL + "/today.xml",
				published,
			},
			urls,
		)
	})

	t.Run("explicit date never uses the latest path", func(t *testing.T) {
		t.Parallel()

		var (
			urls []string

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					urls = append(urls, url)

					return dailyBody(calendar.Date{Year: 2026, Month: 1, Day: 5}), nil
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		snapshot, err := e.ResolveDaily(context.Background(), Request{
			Date: calendar.Date{Year: 2026, Month: 1, Day: 5},
		})

		require.NoError(t, err)

		assert.Equal(t, "2026-01-05", snapshot.Date)
		assert.Equal(t, []string{testBaseURL + "/202601/05012026.xml"}, urls)
	})

	t.Run("fallback walks backward across days", func(t *testing.T) {
		t.Parallel()

		var (
			urls []string

			published = testBaseURL + "/202601/02012026.xml"

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					urls = append(urls, url)

					if url == published {
						return dailyBody(calendar.Date{Year: 2026, Month: 1, Day: 2}), nil
					}

					return nil, feed.ErrNotFound
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		snapshot, err := e.ResolveDaily(context.Background(), Request{
			Date: calendar.Date{Year: 2026, Month: 1, Day: 4},
		})

		require.NoError(t, err)

		assert.Equal(t, "2026-01-02", snapshot.Date)
		assert.Equal(
			t,
			[]string{
				testBaseURL + "/202601/04012026.xml",
				testBaseURL + "/202601/03012026.xml",
				published,
			},
			urls,
		)
	})

	t.Run("disabled day fallback makes a single attempt", func(t *testing.T) {
		t.Parallel()

		var (
			attempts int

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					attempts++

					return nil, feed.ErrNotFound
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		snapshot, err := e.ResolveDaily(context.Background(), Request{
			Date:          calendar.Date{Year: 2026, Month: 1, Day: 4},
			NoDayFallback: true,
		})

		assert.Nil(t, snapshot)
		assert.ErrorIs(t, err, ErrNoData)
		assert.Equal(t, 1, attempts)

		var noData *NoDataError

		require.ErrorAs(t, err, &noData)
		assert.Equal(t, 1, noData.Attempts)
		assert.ErrorIs(t, noData.LastErr, feed.ErrNotFound)
	})

	t.Run("exhausted budget surfaces the attempt count", func(t *testing.T) {
		t.Parallel()

		fetcher := &mockFetcher{
			FetchFn: func(_ context.Context, _ string) ([]byte, error) {
				return nil, feed.ErrNotFound
			},
		}

		e := New(fetcher, WithBaseURL(testBaseURL))

		_, err := e.ResolveDaily(context.Background(), Request{
			Date: calendar.Date{Year: 2026, Month: 1, Day: 20},
		})

		var noData *NoDataError

		require.ErrorAs(t, err, &noData)

		// The requested day plus the full retry budget
		assert.Equal(t, dayRetryBudget+1, noData.Attempts)
	})

	t.Run("transport errors are survivable while budget remains", func(t *testing.T) {
		t.Parallel()

		var (
			attempts int

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					attempts++

					if attempts == 1 {
						return nil, &feed.StatusError{Code: 503}
					}

					return dailyBody(calendar.Date{Year: 2026, Month: 1, Day: 3}), nil
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		snapshot, err := e.ResolveDaily(context.Background(), Request{
			Date: calendar.Date{Year: 2026, Month: 1, Day: 4},
		})

		require.NoError(t, err)

		assert.Equal(t, "2026-01-03", snapshot.Date)
		assert.Equal(t, 2, attempts)
	})

	t.Run("transport errors are fatal without day fallback", func(t *testing.T) {
		t.Parallel()

		fetcher := &mockFetcher{
			FetchFn: func(_ context.Context, _ string) ([]byte, error) {
				return nil, &feed.StatusError{Code: 503}
			},
		}

		e := New(fetcher, WithBaseURL(testBaseURL))

		_, err := e.ResolveDaily(context.Background(), Request{
			Date:          calendar.Date{Year: 2026, Month: 1, Day: 4},
			NoDayFallback: true,
		})

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoData)

		var statusErr *feed.StatusError

		assert.ErrorAs(t, err, &statusErr)
	})

	t.Run("cancellation is terminal", func(t *testing.T) {
		t.Parallel()

		var (
			attempts int

			ctx, cancel = context.WithCancel(context.Background())

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					attempts++

					cancel()

					return nil, context.Canceled
				},
			}
		)

		t.Cleanup(cancel)

		e := New(fetcher, WithBaseURL(testBaseURL))

		_, err := e.ResolveDaily(ctx, Request{
			Date: calendar.Date{Year: 2026, Month: 1, Day: 4},
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("malformed documents are fatal", func(t *testing.T) {
		t.Parallel()

		var (
			attempts int

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					attempts++

					return []byte("<Tarih_Date></Tarih_Date>"), nil
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		_, err := e.ResolveDaily(context.Background(), Request{
			Date: calendar.Date{Year: 2026, Month: 1, Day: 4},
		})

		assert.ErrorIs(t, err, document.ErrMalformed)
		assert.Equal(t, 1, attempts)
	})
}

func TestEngine_ResolveHourly(t *testing.T) {
	t.Parallel()

	t.Run("hour sweep precedes day decrement", func(t *testing.T) {
		t.Parallel()

		var (
			urls []string

			published = testBaseURL + "/202601/05012026-1500.xml"

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					urls = append(urls, url)

					if url == published {
						return hourlyBody(
							calendar.Date{Year: 2026, Month: 1, Day: 5},
							calendar.Slot1500,
						), nil
					}

					return nil, feed.ErrNotFound
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		snapshot, err := e.ResolveHourly(context.Background(), Request{
			Date: calendar.Date{Year: 2026, Month: 1, Day: 7},
			Slot: calendar.Slot1400,
		})

		require.NoError(t, err)

		assert.Equal(t, "2026-01-05", snapshot.Date)
		assert.Equal(t, calendar.Slot1500, snapshot.Slot)

		// The first day sweeps down from the requested hour; every earlier
		// day restarts from the latest publication slot
		assert.Equal(
			t,
			[]string{
				testBaseURL + "/202601/07012026-1400.xml",
				testBaseURL + "/202601/07012026-1300.xml",
				testBaseURL + "/202601/07012026-1200.xml",
				testBaseURL + "/202601/07012026-1100.xml",
				testBaseURL + "/202601/07012026-1000.xml",
				testBaseURL + "/202601/06012026-1500.xml",
				testBaseURL + "/202601/06012026-1400.xml",
				testBaseURL + "/202601/06012026-1300.xml",
				testBaseURL + "/202601/06012026-1200.xml",
				testBaseURL + "/202601/06012026-1100.xml",
				testBaseURL + "/202601/06012026-1000.xml",
				published,
			},
			urls,
		)
	})

	t.Run("implicit slot uses the current publishable one", func(t *testing.T) {
		t.Parallel()

		var (
			urls []string

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					urls = append(urls, url)

					return hourlyBody(
						calendar.Date{Year: 2026, Month: 1, Day: 7},
						calendar.Slot1200,
					), nil
				},
			}
		)

		e := New(
			fetcher,
			WithBaseURL(testBaseURL),
			WithClock(fixedClock(2026, time.January, 7, 12, 30)),
		)

		snapshot, err := e.ResolveHourly(context.Background(), Request{})

		require.NoError(t, err)

		assert.Equal(t, calendar.Slot1200, snapshot.Slot)
		assert.Equal(t, []string{testBaseURL + "/202601/07012026-1200.xml"}, urls)
	})

	t.Run("disabled hour fallback pins the literal slot", func(t *testing.T) {
		t.Parallel()

		var (
			urls []string

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					urls = append(urls, url)

					return nil, feed.ErrNotFound
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		_, err := e.ResolveHourly(context.Background(), Request{
			Date:           calendar.Date{Year: 2026, Month: 1, Day: 7},
			Slot:           calendar.Slot1400,
			NoDayFallback:  true,
			NoHourFallback: true,
		})

		assert.ErrorIs(t, err, ErrNoData)
		assert.Equal(t, []string{testBaseURL + "/202601/07012026-1400.xml"}, urls)
	})

	t.Run("pinned slot still walks back across days", func(t *testing.T) {
		t.Parallel()

		var (
			urls []string

			published = testBaseURL + "/202601/06012026-1500.xml"

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					urls = append(urls, url)

					if url == published {
						return hourlyBody(
							calendar.Date{Year: 2026, Month: 1, Day: 6},
							calendar.Slot1500,
						), nil
					}

					return nil, feed.ErrNotFound
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		_, err := e.ResolveHourly(context.Background(), Request{
			Date:           calendar.Date{Year: 2026, Month: 1, Day: 7},
			Slot:           calendar.Slot1100,
			NoHourFallback: true,
		})

		require.NoError(t, err)

		// An earlier day restarts from the latest slot even when the hour
		// sweep itself is disabled
		assert.Equal(
			t,
			[]string{
				testBaseURL + "/202601/07012026-1100.xml",
				published,
			},
			urls,
		)
	})

	t.Run("malformed documents are fatal", func(t *testing.T) {
		t.Parallel()

		var (
			attempts int

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					attempts++

					return []byte("<tcmb_saatlik></tcmb_saatlik>"), nil
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		_, err := e.ResolveHourly(context.Background(), Request{
			Date: calendar.Date{Year: 2026, Month: 1, Day: 7},
			Slot: calendar.Slot1400,
		})

		assert.ErrorIs(t, err, document.ErrMalformed)
		assert.Equal(t, 1, attempts)
	})
}

func TestEngine_Cache(t *testing.T) {
	t.Parallel()

	t.Run("repeated daily resolution fetches once", func(t *testing.T) {
		t.Parallel()

		var (
			fetches int

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					fetches++

					return dailyBody(calendar.Date{Year: 2026, Month: 1, Day: 5}), nil
				},
			}

			req = Request{Date: calendar.Date{Year: 2026, Month: 1, Day: 5}}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		first, err := e.ResolveDaily(context.Background(), req)
		require.NoError(t, err)

		second, err := e.ResolveDaily(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 1, fetches)
		assert.Equal(t, first, second)
	})

	t.Run("cache bypass fetches every time", func(t *testing.T) {
		t.Parallel()

		var (
			fetches int

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					fetches++

					return dailyBody(calendar.Date{Year: 2026, Month: 1, Day: 5}), nil
				},
			}

			req = Request{
				Date:    calendar.Date{Year: 2026, Month: 1, Day: 5},
				NoCache: true,
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		_, err := e.ResolveDaily(context.Background(), req)
		require.NoError(t, err)

		_, err = e.ResolveDaily(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 2, fetches)
	})

	t.Run("hourly snapshots cache per slot", func(t *testing.T) {
		t.Parallel()

		var (
			fetches int

			date = calendar.Date{Year: 2026, Month: 1, Day: 5}

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					fetches++

					slot := calendar.Slot1400
					if url == feed.HourlyKey(date, calendar.Slot1500).URL(testBaseURL) {
						slot = calendar.Slot1500
					}

					return hourlyBody(date, slot), nil
				},
			}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		for _, slot := range []calendar.Slot{
			calendar.Slot1400,
			calendar.Slot1500,
			calendar.Slot1400,
		} {
			_, err := e.ResolveHourly(context.Background(), Request{
				Date:           date,
				Slot:           slot,
				NoHourFallback: true,
			})
			require.NoError(t, err)
		}

		assert.Equal(t, 2, fetches)
	})

	t.Run("clearing the cache forces a refetch", func(t *testing.T) {
		t.Parallel()

		var (
			fetches int

			fetcher = &mockFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					fetches++

					return dailyBody(calendar.Date{Year: 2026, Month: 1, Day: 5}), nil
				},
			}

			req = Request{Date: calendar.Date{Year: 2026, Month: 1, Day: 5}}
		)

		e := New(fetcher, WithBaseURL(testBaseURL))

		_, err := e.ResolveDaily(context.Background(), req)
		require.NoError(t, err)

		e.ClearCache()

		_, err = e.ResolveDaily(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 2, fetches)
	})
}
