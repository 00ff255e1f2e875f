package websocket

import (
	"fmt"
	"sync"
	"time"
)

const monthKeyLayout = "2006-01"

// MonthKey formats a calendar month as "YYYY-MM"
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseMonthKey validates a "YYYY-MM" key and returns it normalized
func ParseMonthKey(key string) (string, error) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: want YYYY-MM", key)
	}
	return t.Format(monthKeyLayout), nil
}

// Subscriber is implemented by clients that only want some events
type Subscriber interface {
	Wants(event Event) bool
}

// MonthFilter is the set of months a client watches. A filter that was never
// scoped watches all months. Once scoped it stays scoped, so unsubscribing the
// last month watches none.
type MonthFilter struct {
	mu     sync.RWMutex
	months map[string]struct{}
	scoped bool
}

// NewMonthFilter creates a filter watching the given month keys
func NewMonthFilter(months ...string) *MonthFilter {
	f := &MonthFilter{
		months: make(map[string]struct{}, len(months)),
		scoped: len(months) > 0,
	}
	for _, m := range months {
		f.months[m] = struct{}{}
	}
	return f
}

func (f *MonthFilter) Add(month string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scoped = true
	f.months[month] = struct{}{}
}

func (f *MonthFilter) Remove(month string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scoped = true
	delete(f.months, month)
}

// Wants reports whether the event is unscoped or in a watched month
func (f *MonthFilter) Wants(event Event) bool {
	if event.Month == "" {
		return true
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.scoped {
		return true
	}
	_, ok := f.months[event.Month]
	return ok
}

// command is an inbound client frame: {"action":"subscribe","month":"2024-06"}
type command struct {
	Action string `json:"action"`
	Month  string `json:"month"`
}

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)

// apply updates the filter from a command
func (f *MonthFilter) apply(cmd command) error {
	month, err := ParseMonthKey(cmd.Month)
	if err != nil {
		return err
	}
	switch cmd.Action {
	case actionSubscribe:
		f.Add(month)
	case actionUnsubscribe:
		f.Remove(month)
	default:
		return fmt.Errorf("unknown action %q", cmd.Action)
	}
	return nil
}
