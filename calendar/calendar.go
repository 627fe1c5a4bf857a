package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Ankara is the fixed publication timezone of the feed (UTC+3, no DST).
var Ankara = time.FixedZone("TRT", 3*60*60)

var ErrInvalidDate = errors.New("invalid date")

// Date is a single calendar day, free of any time-of-day or zone component.
// The zero value is reserved to mean "no explicit date requested".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates the given instant to its calendar day in the
// publication timezone.
func DateOf(t time.Time) Date {
	y, m, d := t.In(Ankara).Date()

	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO "YYYY-MM-DD" or Turkish "DD.MM.YYYY" date string
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)

	for _, layout := range []string{"2006-01-02", "02.01.2006"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		y, m, d := t.Date()

		return Date{Year: y, Month: m, Day: d}, nil
	}

	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// NormalizeLooseISO zero-pads the month and day components of a loosely
// formatted ISO date ("2026-1-5" -> "2026-01-05")
func NormalizeLooseISO(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	nums := make([]int, 3)

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}

		nums[i] = n
	}

	if nums[1] < 1 || nums[1] > 12 || nums[2] < 1 || nums[2] > 31 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return fmt.Sprintf("%04d-%02d-%02d", nums[0], nums[1], nums[2]), nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// ISO formats the date as "YYYY-MM-DD"
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Previous returns the previous calendar day. It is a pure decrement with
// no business-day awareness; skipping unpublished days is the resolution
// engine's job
func (d Date) Previous() Date {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	y, m, day := t.Date()

	return Date{Year: y, Month: m, Day: day}
}

// DailyPath encodes the date as the feed's daily bulletin path segment,
// "YYYYMM/DDMMYYYY.xml"
func (d Date) DailyPath() string {
	return fmt.Sprintf(
		"%04d%02d/%02d%02d%04d.xml",
		d.Year, d.Month,
		d.Day, d.Month, d.Year,
	)
}

// HourlyPath encodes the date and publication slot as the feed's hourly
// snapshot path segment, "YYYYMM/DDMMYYYY-HHMM.xml"
func (d Date) HourlyPath(s Slot) string {
	return fmt.Sprintf(
		"%04d%02d/%02d%02d%04d-%s.xml",
		d.Year, d.Month,
		d.Day, d.Month, d.Year,
		s.Compact(),
	)
}
