package geo

import (
	"math"
	"testing"
)

func TestBearingTo(t *testing.T) {
	testCases := []struct {
		name                       string
		p1Lat, p1Lon, p2Lat, p2Lon float64
		want                       float64
	}{
		{
			name:  "due north",
			p1Lat: 0, p1Lon: 0, p2Lat: 1, p2Lon: 0,
			want: 0,
		},
		{
			name:  "due east along equator",
			p1Lat: 0, p1Lon: 0, p2Lat: 0, p2Lon: 1,
			want: 90,
		},
		{
			name:  "due south",
			p1Lat: 1, p1Lon: 0, p2Lat: 0, p2Lon: 0,
			want: 180,
		},
		{
			name:  "due west along equator",
			p1Lat: 0, p1Lon: 1, p2Lat: 0, p2Lon: 0,
			want: 270,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := BearingTo(tt.p1Lat, tt.p1Lon, tt.p2Lat, tt.p2Lon)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("BearingTo = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestBearingDifference(t *testing.T) {
	testCases := []struct {
		name   string
		b1, b2 float64
		want   float64
	}{
		{name: "identical", b1: 45, b2: 45, want: 0},
		{name: "opposite", b1: 0, b2: 180, want: 180},
		{name: "across north wraparound", b1: 350, b2: 10, want: 20},
		{name: "quarter turn", b1: 90, b2: 180, want: 90},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := BearingDifference(tt.b1, tt.b2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("BearingDifference(%f, %f) = %f, want %f", tt.b1, tt.b2, got, tt.want)
			}
			// direction independent
			if sym := BearingDifference(tt.b2, tt.b1); math.Abs(sym-got) > 1e-9 {
				t.Errorf("BearingDifference not symmetric: %f vs %f", got, sym)
			}
		})
	}
}
