package slotclock

import (
	"fmt"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
)

const (
	DefaultOpen        = "08:00"
	DefaultClose       = "20:00"
	DefaultGranularity = 30
)

// Slot is one boundary pair produced by the clock. Start and End are HH:MM
// strings aligned to the granularity.
type Slot struct {
	Index int
	Start string
	End   string
}

// Clock maps between HH:MM times and slot indices for a fixed daily
// operating window. It holds no mutable state.
type Clock struct {
	open        int // minutes since midnight
	close       int
	granularity int
}

// New builds a clock for the window [open, close) with the given granularity
// in minutes. The window must be non-empty and divide evenly into slots.
func New(open, close string, granularityMinutes int) (*Clock, error) {
	openMin, err := parseHHMM(open)
	if err != nil {
		return nil, fmt.Errorf("parse open time: %w", err)
	}
	closeMin, err := parseHHMM(close)
	if err != nil {
		return nil, fmt.Errorf("parse close time: %w", err)
	}
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("granularity must be positive, got %d", granularityMinutes)
	}
	if closeMin <= openMin {
		return nil, fmt.Errorf("close %s must be after open %s", close, open)
	}
	if (closeMin-openMin)%granularityMinutes != 0 {
		return nil, fmt.Errorf("window %s-%s does not divide into %d-minute slots", open, close, granularityMinutes)
	}
	return &Clock{open: openMin, close: closeMin, granularity: granularityMinutes}, nil
}

// Default returns the standard 08:00-20:00 clock with 30-minute slots.
func Default() *Clock {
	c, err := New(DefaultOpen, DefaultClose, DefaultGranularity)
	if err != nil {
		panic(err) // constants are known-valid
	}
	return c
}

// SlotCount is the number of slots in the operating window.
func (c *Clock) SlotCount() int {
	return (c.close - c.open) / c.granularity
}

// SlotsForDay returns every slot of the day in index order.
func (c *Clock) SlotsForDay() []Slot {
	n := c.SlotCount()
	slots := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		start, end, _ := c.IndexToTime(i)
		slots = append(slots, Slot{Index: i, Start: start, End: end})
	}
	return slots
}

// TimeToIndex converts an HH:MM time to the index of the slot starting at
// that time. Times outside the window or not aligned to the granularity
// fail with ErrOutOfWindow.
func (c *Clock) TimeToIndex(hhmm string) (int, error) {
	min, err := parseHHMM(hhmm)
	if err != nil {
		return 0, err
	}
	if min < c.open || min >= c.close {
		return 0, fmt.Errorf("%s: %w", hhmm, domain.ErrOutOfWindow)
	}
	if (min-c.open)%c.granularity != 0 {
		return 0, fmt.Errorf("%s is not aligned to %d minutes: %w", hhmm, c.granularity, domain.ErrOutOfWindow)
	}
	return (min - c.open) / c.granularity, nil
}

// IndexToTime returns the [start, end) HH:MM pair for a slot index.
func (c *Clock) IndexToTime(index int) (start, end string, err error) {
	if index < 0 || index >= c.SlotCount() {
		return "", "", fmt.Errorf("index %d: %w", index, domain.ErrIndexOutOfRange)
	}
	startMin := c.open + index*c.granularity
	return formatHHMM(startMin), formatHHMM(startMin + c.granularity), nil
}

func parseHHMM(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, domain.ErrOutOfWindow)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatHHMM(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
