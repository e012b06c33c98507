package util

import (
	"testing"
	"time"
)

func TestParseTradeTimestamp(t *testing.T) {
	got, ok := ParseTradeTimestamp(" 05-01-2023 10:30 ")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2023, 1, 5, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTradeTimestampSingleDigits(t *testing.T) {
	got, ok := ParseTradeTimestamp("5-1-2023 9:05")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Day() != 5 || got.Month() != time.January || got.Hour() != 9 {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTradeTimestampRejectsOtherLayouts(t *testing.T) {
	for _, s := range []string{"", "2023-01-05 10:30", "not a date", "32-01-2023 10:30"} {
		if _, ok := ParseTradeTimestamp(s); ok {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestParseCalendarDate(t *testing.T) {
	for _, s := range []string{"2023-01-05", "2023-01-05T13:45:00Z", " 2023-01-05 "} {
		got, ok := ParseCalendarDate(s)
		if !ok {
			t.Fatalf("expected %q to parse", s)
		}
		if got.Format(DateLayout) != "2023-01-05" || got.Hour() != 0 {
			t.Fatalf("unexpected date %v for %q", got, s)
		}
	}
	if _, ok := ParseCalendarDate("garbage"); ok {
		t.Fatalf("expected garbage to be rejected")
	}
}

func TestParseFloat(t *testing.T) {
	cases := map[string]float64{"12.5": 12.5, " -3 ": -3, "$1,234.50": 1234.5}
	for in, want := range cases {
		got, ok := ParseFloat(in)
		if !ok || got != want {
			t.Fatalf("ParseFloat(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseFloat("n/a"); ok {
		t.Fatalf("expected n/a to be rejected")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Fear, ,Greed ,")
	if len(got) != 2 || got[0] != "Fear" || got[1] != "Greed" {
		t.Fatalf("unexpected list %v", got)
	}
}
