// Package event computes the countdown to the barbecue.
package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// Started is shown once the event start has passed.
const Started = "Evento em andamento!"

// Event is a single scheduled start instant.
type Event struct {
	At time.Time
}

// Parse builds an Event from a "2006-01-02" date, a "15:04" clock and an IANA
// time zone name.
func Parse(date, clock, tz string) (Event, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return Event{}, errors.New("event date and time are required")
	}

	loc, err := time.LoadLocation(strings.TrimSpace(tz))
	if err != nil {
		return Event{}, fmt.Errorf("load time zone %q: %w", tz, err)
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return Event{}, fmt.Errorf("parse event time %q %q: %w", date, clock, err)
	}
	return Event{At: at}, nil
}

// Remaining is the time left until the event, split into display units.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Started bool
}

// Countdown returns the time left from now until the event start. Partial
// seconds are dropped.
func (e Event) Countdown(now time.Time) Remaining {
	left := e.At.Sub(now)
	if left <= 0 {
		return Remaining{Started: true}
	}
	total := int64(left / time.Second)
	return Remaining{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

func (r Remaining) String() string {
	if r.Started {
		return Started
	}
	return fmt.Sprintf("%dd %dh %dm %ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}
