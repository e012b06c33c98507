package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateParseAndFormat(t *testing.T) {
	d, err := ParseDate("2023-1-5")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-05", d.String())
	assert.Equal(t, time.Thursday, d.Weekday())
	assert.Equal(t, NewDate(2023, time.January, 5), d)

	_, err = ParseDate("05-01-2023")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(MustParseDate("2024-02-29"))
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal(b, &d))
	assert.Equal(t, MustParseDate("2024-02-29"), d)

	b, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestDateBetweenOpenBounds(t *testing.T) {
	d := MustParseDate("2023-03-10")
	assert.True(t, d.Between(Date{}, Date{}))
	assert.True(t, d.Between(d, d))
	assert.False(t, d.Between(d.Add(1), Date{}))
	assert.False(t, d.Between(Date{}, d.Add(-1)))
}

func TestParseBand(t *testing.T) {
	b, ok := ParseBand("  extreme greed ")
	require.True(t, ok)
	assert.Equal(t, ExtremeGreed, b)
	assert.Equal(t, 4, b.Index())

	_, ok = ParseBand("Panic")
	assert.False(t, ok)
	assert.Equal(t, []Band{ExtremeFear, Fear, Neutral, Greed, ExtremeGreed}, Bands())
}

func TestFloatJSONNaN(t *testing.T) {
	b, err := json.Marshal(struct {
		A Float `json:"a"`
		B Float `json:"b"`
	}{NaN(), 1.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":1.5}`, string(b))

	var f Float
	require.NoError(t, json.Unmarshal([]byte("null"), &f))
	assert.True(t, math.IsNaN(float64(f)))
	assert.Equal(t, 2.0, f.Or(2))
}

func TestFilterRequest(t *testing.T) {
	f, err := FilterRequest{From: "2023-01-01", To: "2023-01-31", Bands: []string{"fear, Greed", "Fear"}, Capital: 5000, Risk: 2}.Filter()
	require.NoError(t, err)
	assert.Equal(t, []Band{Fear, Greed}, f.Bands)
	assert.Equal(t, MustParseDate("2023-01-01"), f.From)

	f, err = FilterRequest{}.Filter()
	require.NoError(t, err)
	assert.Len(t, f.Bands, 5)
	assert.True(t, f.From.IsZero())

	_, err = FilterRequest{Bands: []string{"Panic"}}.Filter()
	assert.Error(t, err)

	f, err = FilterRequest{From: "2023-02-01", To: "2023-01-01"}.Filter()
	require.NoError(t, err)
	assert.False(t, f.Match(MergedRecord{Date: MustParseDate("2023-01-15"), FGClass: Fear}))
}

func TestFilterMatch(t *testing.T) {
	f := Filter{From: MustParseDate("2023-01-05"), To: MustParseDate("2023-01-05"), Bands: []Band{Fear}}
	assert.True(t, f.Match(MergedRecord{Date: MustParseDate("2023-01-05"), FGClass: Fear}))
	assert.False(t, f.Match(MergedRecord{Date: MustParseDate("2023-01-05"), FGClass: Greed}))
	assert.False(t, f.Match(MergedRecord{Date: MustParseDate("2023-01-06"), FGClass: Fear}))
}

func TestValidBandList(t *testing.T) {
	assert.True(t, ValidBandList("Fear"))
	assert.True(t, ValidBandList(" extreme greed , Neutral "))
	assert.True(t, ValidBandList(""))
	assert.False(t, ValidBandList("Fear,Panic"))
}
