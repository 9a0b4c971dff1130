package gps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit-chaubey/mediamd/core"
)

func triple(d, m, s int64) []core.Rational {
	return []core.Rational{{Num: d, Den: 1}, {Num: m, Den: 1}, {Num: s, Den: 1}}
}

func TestToDecimal(t *testing.T) {
	lat := triple(1, 30, 0)
	lon := triple(2, 15, 0)

	tests := []struct {
		name           string
		latRef, lonRef string
		want           Coordinate
	}{
		{"north east", "N", "E", Coordinate{Lat: 1.5, Lon: 2.25}},
		{"south", "S", "E", Coordinate{Lat: -1.5, Lon: 2.25}},
		{"west", "N", "W", Coordinate{Lat: 1.5, Lon: -2.25}},
		{"south west", "S", "W", Coordinate{Lat: -1.5, Lon: -2.25}},
		{"missing refs", "", "", Coordinate{Lat: 1.5, Lon: 2.25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToDecimal(core.GPSRaw{
				Triples: [][]core.Rational{lat, lon},
				LatRef:  tt.latRef,
				LonRef:  tt.lonRef,
			})
			require.True(t, ok)
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-12)
			assert.InDelta(t, tt.want.Lon, got.Lon, 1e-12)
		})
	}
}

func TestToDecimal_Seconds(t *testing.T) {
	raw := core.GPSRaw{
		Triples: [][]core.Rational{
			{{Num: 40, Den: 1}, {Num: 44, Den: 1}, {Num: 550404, Den: 10000}},
			{{Num: 73, Den: 1}, {Num: 59, Den: 1}, {Num: 0, Den: 1}},
		},
		LatRef: "N",
		LonRef: "W",
	}
	got, ok := ToDecimal(raw)
	require.True(t, ok)
	assert.Equal(t, "40.748622, -73.983333", Format(got))
}

func TestToDecimal_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  core.GPSRaw
	}{
		{"empty", core.GPSRaw{}},
		{"one triple", core.GPSRaw{Triples: [][]core.Rational{triple(1, 0, 0)}}},
		{"three triples", core.GPSRaw{Triples: [][]core.Rational{triple(1, 0, 0), triple(1, 0, 0), triple(1, 0, 0)}}},
		{"short triple", core.GPSRaw{Triples: [][]core.Rational{{{Num: 1, Den: 1}}, triple(1, 0, 0)}}},
		{"zero denominator lat", core.GPSRaw{Triples: [][]core.Rational{
			{{Num: 1, Den: 0}, {Num: 0, Den: 1}, {Num: 0, Den: 1}},
			triple(2, 0, 0),
		}}},
		{"zero denominator lon seconds", core.GPSRaw{Triples: [][]core.Rational{
			triple(1, 0, 0),
			{{Num: 2, Den: 1}, {Num: 0, Den: 1}, {Num: 5, Den: 0}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, ok := ToDecimal(tt.raw)
				assert.False(t, ok)
			})
		})
	}
}

func TestFromDecimal_RoundTrip(t *testing.T) {
	raw := FromDecimal(-33.868820, 151.209290)
	assert.Equal(t, "S", raw.LatRef)
	assert.Equal(t, "E", raw.LonRef)

	got, ok := ToDecimal(raw)
	require.True(t, ok)
	assert.Equal(t, "-33.868820, 151.209290", Format(got))
}
