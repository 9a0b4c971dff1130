// Package gps converts EXIF sexagesimal GPS positions to signed decimal degrees.
package gps

import (
	"fmt"
	"math"

	"github.com/ankit-chaubey/mediamd/core"
)

// Coordinate is a position in signed decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// ToDecimal converts raw to decimal degrees. It reports false when raw does
// not hold exactly a latitude and a longitude triple, or when any component
// has a zero denominator.
func ToDecimal(raw core.GPSRaw) (Coordinate, bool) {
	if len(raw.Triples) != 2 {
		return Coordinate{}, false
	}
	lat, ok := degrees(raw.Triples[0])
	if !ok {
		return Coordinate{}, false
	}
	lon, ok := degrees(raw.Triples[1])
	if !ok {
		return Coordinate{}, false
	}
	if raw.LatRef == "S" {
		lat = -lat
	}
	if raw.LonRef == "W" {
		lon = -lon
	}
	return Coordinate{Lat: lat, Lon: lon}, true
}

func degrees(t []core.Rational) (float64, bool) {
	if len(t) != 3 {
		return 0, false
	}
	var parts [3]float64
	for i, r := range t {
		if r.Den == 0 {
			return 0, false
		}
		parts[i] = float64(r.Num) / float64(r.Den)
	}
	return parts[0] + parts[1]/60 + parts[2]/3600, true
}

// Format renders c as "lat, lon" with six decimal places.
func Format(c Coordinate) string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lon)
}

// decimalScale is the denominator used by FromDecimal (micro-degrees).
const decimalScale = 1_000_000

// FromDecimal builds a GPSRaw from a decoder that only reports decimal
// degrees. Degrees carry the whole value; minutes and seconds are zero.
func FromDecimal(lat, lon float64) core.GPSRaw {
	raw := core.GPSRaw{LatRef: "N", LonRef: "E"}
	if lat < 0 {
		raw.LatRef = "S"
	}
	if lon < 0 {
		raw.LonRef = "W"
	}
	triple := func(v float64) []core.Rational {
		return []core.Rational{
			{Num: int64(math.Round(math.Abs(v) * decimalScale)), Den: decimalScale},
			{Num: 0, Den: 1},
			{Num: 0, Den: 1},
		}
	}
	raw.Triples = [][]core.Rational{triple(lat), triple(lon)}
	return raw
}
