package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"40", 4000, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for i, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d %q: got (%d, %v), want %d", i, tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d %q: expected error", i, tc.in)
		}
	}
}

func TestFormatEuros(t *testing.T) {
	if got := (Money{Cents: 1234}).FormatEuros(); got != "12.34" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: 5}).FormatEuros(); got != "0.05" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: -150}).FormatEuros(); got != "-1.50" {
		t.Fatalf("got %q", got)
	}
}
