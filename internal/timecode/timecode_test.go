package timecode

import (
	"errors"
	"testing"

	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00:00", 0},
		{"00:00:01", 1},
		{"00:01:00", 60},
		{"01:23:45", 5025},
		{"10:00:00", 36000},
		{"100:00:00", 360000},
		{"23:59:59", 86399},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"1:2:3",
		"01:23",
		"01:23:45:00",
		"01:60:00",
		"01:00:60",
		"0a:00:00",
		"01:2b:00",
		"-1:00:00",
		"01:023:00",
		"1:00:00",
		" 01:00:00",
	}
	for _, s := range bad {
		if _, err := ParseClock(s); err == nil {
			t.Fatalf("ParseClock(%q): expected error", s)
		} else if !errors.Is(err, apperr.ErrInvalidTimeFormat) {
			t.Fatalf("ParseClock(%q): error %v is not ErrInvalidTimeFormat", s, err)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00:00"},
		{1, "00:00:01"},
		{5025, "01:23:45"},
		{86399, "23:59:59"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.in); got != tc.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, s := range []int{0, 1, 59, 60, 61, 3599, 3600, 5025, 86399, 86400, 360000, 999999} {
		got, err := ParseClock(FormatClock(s))
		if err != nil {
			t.Fatalf("round trip %d: %v", s, err)
		}
		if got != s {
			t.Fatalf("round trip %d: got %d", s, got)
		}
	}
}
