package query

import (
	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
	"github.com/yusufcetin82/tcmb-xml-rates/resolve"
)

// Filter narrows a daily rate set by quote category
type Filter int

const (
	// FilterAll keeps every entry of the bulletin
	FilterAll Filter = iota

	// FilterForex keeps entries carrying at least one forex quote
	FilterForex

	// FilterBanknote keeps entries carrying at least one banknote quote
	FilterBanknote
)

// Options carries the per-call parameters of a query
type Options struct {
	// Date is the requested bulletin day, "YYYY-MM-DD" or "DD.MM.YYYY".
	// Empty means today in the publication timezone.
	Date string

	// Hour is the requested publication slot, "HH:MM" (hourly queries
	// only). Empty means the current publishable slot.
	Hour string

	// Filter narrows daily results by quote category
	Filter Filter

	// Quote selects the quote field used on both conversion legs
	Quote QuoteField

	// NoDayFallback disables walking back across calendar days
	NoDayFallback bool

	// NoHourFallback disables the descending hour sweep within a day
	NoHourFallback bool

	// NoCache bypasses the snapshot cache
	NoCache bool
}

// request converts the caller options into an engine request
func (o Options) request() (resolve.Request, error) {
	req := resolve.Request{
		NoDayFallback:  o.NoDayFallback,
		NoHourFallback: o.NoHourFallback,
		NoCache:        o.NoCache,
	}

	if o.Date != "" {
		date, err := calendar.ParseDate(o.Date)
		if err != nil {
			return resolve.Request{}, err
		}

		req.Date = date
	}

	if o.Hour != "" {
		slot, err := calendar.ParseSlot(o.Hour)
		if err != nil {
			return resolve.Request{}, err
		}

		req.Slot = slot
	}

	return req, nil
}
