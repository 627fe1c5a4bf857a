package resolve

import (
	"time"

	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
)

// Cache lifetimes, chosen at write time from the resolved document's
// freshness. Past days are immutable, same-day documents may be revised.
const (
	ttlDailyToday     = 5 * time.Minute
	ttlHourlyActive   = time.Minute
	ttlHourlyPastSlot = 30 * time.Minute
	ttlPastDay        = 24 * time.Hour
)

// dailyTTL picks the cache lifetime for a resolved daily bulletin
func (e *Engine) dailyTTL(isoDate string) time.Duration {
	if isoDate == calendar.DateOf(e.now()).ISO() {
		return ttlDailyToday
	}

	return ttlPastDay
}

// hourlyTTL picks the cache lifetime for a resolved hourly snapshot.
// The currently active slot is the only one that can still change.
func (e *Engine) hourlyTTL(isoDate string, slot calendar.Slot) time.Duration {
	if isoDate != calendar.DateOf(e.now()).ISO() {
		return ttlPastDay
	}

	if slot == calendar.CurrentSlot(e.now()) {
		return ttlHourlyActive
	}

	return ttlHourlyPastSlot
}
