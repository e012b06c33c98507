package util

import (
	"math"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234.5, "$1,234.50"},
		{-1234.5, "-$1,234.50"},
		{0, "$0.00"},
		{math.NaN(), "n/a"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(-5400); got != "-5,400.00" {
		t.Fatalf("unexpected amount %q", got)
	}
	if got := FormatAmount(math.Inf(1)); got != NotAvailable {
		t.Fatalf("unexpected amount %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.42); got != "42.0%" {
		t.Fatalf("unexpected percent %q", got)
	}
}
