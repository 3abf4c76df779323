package payments

import "testing"

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   Cents
		want string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{6307, "R$ 63,07"},
		{100000, "R$ 1.000,00"},
		{123456789, "R$ 1.234.567,89"},
		{-6307, "-R$ 63,07"},
	}
	for _, tc := range cases {
		if got := FormatBRL(tc.in); got != tc.want {
			t.Errorf("FormatBRL(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    Cents
		wantErr bool
	}{
		{"63.07", 6307, false},
		{"63,07", 6307, false},
		{"R$ 1.234,56", 123456, false},
		{"50", 5000, false},
		{"12.5", 1250, false},
		{"", 0, true},
		{"1.234", 0, true},
		{"abc", 0, true},
		{"-3", 0, true},
		{"3.", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseAmount(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
