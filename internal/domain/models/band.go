package models

import "strings"

// Band is one of the five Fear & Greed classifications.
type Band string

const (
	ExtremeFear  Band = "Extreme Fear"
	Fear         Band = "Fear"
	Neutral      Band = "Neutral"
	Greed        Band = "Greed"
	ExtremeGreed Band = "Extreme Greed"
)

var bandOrder = []Band{ExtremeFear, Fear, Neutral, Greed, ExtremeGreed}

// Bands returns the five bands from most fearful to most greedy.
func Bands() []Band {
	out := make([]Band, len(bandOrder))
	copy(out, bandOrder)
	return out
}

// ParseBand matches s against the band names ignoring case and surrounding space.
func ParseBand(s string) (Band, bool) {
	s = strings.TrimSpace(s)
	for _, b := range bandOrder {
		if strings.EqualFold(s, string(b)) {
			return b, true
		}
	}
	return "", false
}

// Index is the position of b in Bands, or -1.
func (b Band) Index() int {
	for i, x := range bandOrder {
		if x == b {
			return i
		}
	}
	return -1
}

func (b Band) String() string { return string(b) }
