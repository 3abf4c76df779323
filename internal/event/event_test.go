package event

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	ev, err := Parse("2025-12-06", "16:00", "America/Sao_Paulo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := time.Date(2025, 12, 6, 19, 0, 0, 0, time.UTC)
	if !ev.At.Equal(want) {
		t.Fatalf("At = %v, want %v", ev.At.UTC(), want)
	}
	if ev.At.Location().String() != "America/Sao_Paulo" {
		t.Fatalf("location = %v", ev.At.Location())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name            string
		date, clock, tz string
	}{
		{name: "empty date", date: "", clock: "16:00", tz: "UTC"},
		{name: "empty clock", date: "2025-12-06", clock: " ", tz: "UTC"},
		{name: "bad zone", date: "2025-12-06", clock: "16:00", tz: "Mars/Olympus"},
		{name: "bad date", date: "06/12/2025", clock: "16:00", tz: "UTC"},
		{name: "bad clock", date: "2025-12-06", clock: "4pm", tz: "UTC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.date, tt.clock, tt.tz); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCountdown(t *testing.T) {
	at := time.Date(2025, 12, 6, 16, 0, 0, 0, time.UTC)
	ev := Event{At: at}

	tests := []struct {
		name string
		now  time.Time
		want Remaining
		str  string
	}{
		{
			name: "days out",
			now:  at.Add(-(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second)),
			want: Remaining{Days: 3, Hours: 4, Minutes: 5, Seconds: 6},
			str:  "3d 4h 5m 6s",
		},
		{
			name: "partial second truncated",
			now:  at.Add(-1500 * time.Millisecond),
			want: Remaining{Seconds: 1},
			str:  "0d 0h 0m 1s",
		},
		{
			name: "at start",
			now:  at,
			want: Remaining{Started: true},
			str:  Started,
		},
		{
			name: "after start",
			now:  at.Add(time.Hour),
			want: Remaining{Started: true},
			str:  "Evento em andamento!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ev.Countdown(tt.now)
			if got != tt.want {
				t.Fatalf("Countdown() = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.str {
				t.Fatalf("String() = %q, want %q", got.String(), tt.str)
			}
		})
	}
}
