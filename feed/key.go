package feed

import (
	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
)

// latestDailyFile is the well-known path of the most recent daily bulletin
const latestDailyFile = "today.xml"

// KeyKind discriminates the retrieval key variants
type KeyKind int

const (
	// KindLatest is the distinguished latest-bulletin path of the daily
	// feed. It carries no date encoding.
	KindLatest KeyKind = iota

	// KindDaily is an explicit-date daily bulletin
	KindDaily

	// KindHourly is an explicit date and publication slot snapshot
	KindHourly
)

// Key identifies exactly one feed document. Its rendered URL doubles as
// the cache key, so keys are 1:1 with document identity.
type Key struct {
	Kind KeyKind
	Date calendar.Date
	Slot calendar.Slot
}

// LatestDailyKey creates the key of the most recent daily bulletin
func LatestDailyKey() Key {
	return Key{Kind: KindLatest}
}

// DailyKey creates the key of the daily bulletin for the given date
func DailyKey(date calendar.Date) Key {
	return Key{
		Kind: KindDaily,
		Date: date,
	}
}

// HourlyKey creates the key of the hourly snapshot for the given date
// and publication slot
func HourlyKey(date calendar.Date, slot calendar.Slot) Key {
	return Key{
		Kind: KindHourly,
		Date: date,
		Slot: slot,
	}
}

// URL renders the exact retrieval URL of the key under the given feed base
func (k Key) URL(base string) string {
	switch k.Kind {
	case KindDaily:
		return base + "/" + k.Date.DailyPath()
	case KindHourly:
		return base + "/" + k.Date.HourlyPath(k.Slot)
	default:
		return base + "/" + latestDailyFile
	}
}
