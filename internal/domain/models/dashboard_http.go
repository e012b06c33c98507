package models

import (
	"fmt"

	"SentiTrade/pkg/util"
)

// Requests for dashboard HTTP endpoints.

// FilterRequest carries the dashboard filters. Bands may be repeated
// (?bands=Fear&bands=Greed) or comma separated; the "sentiment" validation
// tag is registered by the HTTP handler.
type FilterRequest struct {
	From    string   `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string   `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
	Bands   []string `query:"bands" json:"bands" validate:"dive,sentiment"`
	Capital float64  `query:"capital" json:"capital" default:"10000" validate:"gt=0"`
	Risk    float64  `query:"risk" json:"risk" default:"1" validate:"gte=0.5,lte=3"`
}

// TradesRequest adds a row limit to the filters.
type TradesRequest struct {
	FilterRequest
	Limit int `query:"limit" json:"limit" default:"500" validate:"gte=1,lte=10000"`
}

// ChartRequest selects one of the dashboard charts.
type ChartRequest struct {
	FilterRequest
	Name string `param:"name" validate:"required,oneof=equity distribution sizing"`
}

// Filter is a validated FilterRequest. Zero dates are open bounds.
type Filter struct {
	From    Date    `json:"from"`
	To      Date    `json:"to"`
	Bands   []Band  `json:"bands"`
	Capital float64 `json:"capital"`
	Risk    float64 `json:"risk"`
}

// Filter parses dates and band names. Empty bands select all five.
// A range with from after to is kept as is and matches nothing.
func (r FilterRequest) Filter() (Filter, error) {
	f := Filter{Capital: r.Capital, Risk: r.Risk}

	var err error
	if r.From != "" {
		if f.From, err = ParseDate(r.From); err != nil {
			return Filter{}, err
		}
	}
	if r.To != "" {
		if f.To, err = ParseDate(r.To); err != nil {
			return Filter{}, err
		}
	}
	for _, raw := range r.Bands {
		for _, name := range util.SplitList(raw) {
			b, ok := ParseBand(name)
			if !ok {
				return Filter{}, fmt.Errorf("unknown sentiment band %q", name)
			}
			if !f.HasBand(b) {
				f.Bands = append(f.Bands, b)
			}
		}
	}
	if len(f.Bands) == 0 {
		f.Bands = Bands()
	}
	return f, nil
}

// ValidBandList reports whether every comma separated item of s names a band.
func ValidBandList(s string) bool {
	for _, name := range util.SplitList(s) {
		if _, ok := ParseBand(name); !ok {
			return false
		}
	}
	return true
}

// HasBand reports whether b is selected.
func (f Filter) HasBand(b Band) bool {
	for _, x := range f.Bands {
		if x == b {
			return true
		}
	}
	return false
}

// Match reports whether r passes the date and band filters.
func (f Filter) Match(r MergedRecord) bool {
	return r.Date.Between(f.From, f.To) && f.HasBand(r.FGClass)
}
