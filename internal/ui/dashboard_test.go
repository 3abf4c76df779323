package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/churrascode/churrasco/internal/payments"
)

func TestPaymentStatus(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{payments.MessagePaid, statusPaid},
		{payments.MessageOverdue, statusOverdue},
		{payments.MessageUpcoming, statusUpcoming},
		{"", statusOverdue},
	}
	for _, tt := range tests {
		if got := paymentStatus(tt.message); got != tt.want {
			t.Errorf("paymentStatus(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct   float64
		width int
		want  string
	}{
		{0, 4, "░░░░"},
		{50, 4, "██░░"},
		{100, 4, "████"},
		{150, 2, "██"},
		{-5, 2, "░░"},
		{50, 0, ""},
	}
	for _, tt := range tests {
		if got := progressBar(tt.pct, tt.width); got != tt.want {
			t.Errorf("progressBar(%v, %d) = %q, want %q", tt.pct, tt.width, got, tt.want)
		}
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		name                string
		n, selected, height int
		wantStart, wantEnd  int
	}{
		{"fits", 5, 3, 10, 0, 5},
		{"top", 20, 0, 5, 0, 5},
		{"middle", 20, 10, 5, 8, 13},
		{"bottom", 20, 19, 5, 15, 20},
		{"empty", 0, 0, 5, 0, 0},
		{"no room", 5, 1, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleWindow(tt.n, tt.selected, tt.height)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("visibleWindow(%d, %d, %d) = [%d, %d), want [%d, %d)",
					tt.n, tt.selected, tt.height, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFormatWait(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{1500 * time.Millisecond, "2s"},
		{59 * time.Second, "59s"},
		{61 * time.Second, "1m 01s"},
		{5*time.Minute + 30*time.Second, "5m 30s"},
	}
	for _, tt := range tests {
		if got := formatWait(tt.d); got != tt.want {
			t.Errorf("formatWait(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDashboardKPIs(t *testing.T) {
	m := newTestModel(t, newFakeClock(), Options{})
	m = send(t, m, snapshotMsg(testSnapshot()))

	kpis := m.dashboardKPIs()
	if len(kpis) == 0 {
		t.Fatalf("no KPIs")
	}
	// 15 month slots at R$ 63,07; 3 of them paid.
	if kpis[0].value != "R$ 946,05" {
		t.Errorf("total due = %q, want R$ 946,05", kpis[0].value)
	}
	if kpis[1].value != "R$ 189,21" || kpis[1].label != "Arrecadado (20.0%)" {
		t.Errorf("collected = %q %q", kpis[1].value, kpis[1].label)
	}
}

func TestEmptyRosterWarning(t *testing.T) {
	m := newTestModel(t, newFakeClock(), Options{})
	snap := testSnapshot()
	snap.Roster = nil
	m = send(t, m, snapshotMsg(snap))

	if view := m.View(); !strings.Contains(view, "Nenhum dado encontrado") {
		t.Fatalf("empty roster warning missing:\n%s", view)
	}
}
