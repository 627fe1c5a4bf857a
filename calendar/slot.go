package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidSlot = errors.New("invalid hour slot")

// Slot is one of the six fixed intraday publication times of the hourly feed
type Slot string

const (
	Slot1000 Slot = "10:00"
	Slot1100 Slot = "11:00"
	Slot1200 Slot = "12:00"
	Slot1300 Slot = "13:00"
	Slot1400 Slot = "14:00"
	Slot1500 Slot = "15:00"
)

// Slots lists the publication slots in ascending time order
var Slots = []Slot{
	Slot1000,
	Slot1100,
	Slot1200,
	Slot1300,
	Slot1400,
	Slot1500,
}

// ParseSlot parses an "HH:MM" publication time
func ParseSlot(s string) (Slot, error) {
	candidate := Slot(strings.TrimSpace(s))

	if candidate.Index() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}

	return candidate, nil
}

// Index returns the slot's position in the ascending publication order,
// or -1 for an unknown slot
func (s Slot) Index() int {
	for i, slot := range Slots {
		if slot == s {
			return i
		}
	}

	return -1
}

// Before reports whether s is published earlier in the day than other
func (s Slot) Before(other Slot) bool {
	return s.Index() < other.Index()
}

// Compact strips the colon for use in retrieval paths ("14:00" -> "1400")
func (s Slot) Compact() string {
	return strings.ReplaceAll(string(s), ":", "")
}

func (s Slot) String() string {
	return string(s)
}

// LatestSlot returns the last publication slot of a business day
func LatestSlot() Slot {
	return Slots[len(Slots)-1]
}

// SlotsDescendingFrom returns the slots from start down to the earliest
// slot of the day, inclusive, in descending time order. An unknown start
// degrades to the full descending list.
func SlotsDescendingFrom(start Slot) []Slot {
	idx := start.Index()
	if idx < 0 {
		idx = len(Slots) - 1
	}

	out := make([]Slot, 0, idx+1)

	for i := idx; i >= 0; i-- {
		out = append(out, Slots[i])
	}

	return out
}

// CurrentSlot maps the wall-clock time to the latest slot that should
// already be published. Before the first slot of the day it reports the
// last slot of the previous publication cycle; the resolution engine
// satisfies that by walking back a day.
func CurrentSlot(now time.Time) Slot {
	local := now.In(Ankara)
	minutes := local.Hour()*60 + local.Minute()

	if minutes < Slots[0].clockMinutes() {
		return LatestSlot()
	}

	for i := len(Slots) - 1; i >= 0; i-- {
		if minutes >= Slots[i].clockMinutes() {
			return Slots[i]
		}
	}

	return LatestSlot()
}

// clockMinutes converts a known slot to minutes since midnight
func (s Slot) clockMinutes() int {
	h, _ := strconv.Atoi(string(s)[:2])
	m, _ := strconv.Atoi(string(s)[3:])

	return h*60 + m
}
