package util

import (
	"errors"
	"testing"
)

func TestLessNumericAware(t *testing.T) {
	testCases := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "numeric ordering", a: "9", b: "10", want: true},
		{name: "numeric ordering reversed", a: "10", b: "9", want: false},
		{name: "lexicographic for non-numeric", a: "way-10", b: "way-9", want: true},
		{name: "mixed falls back to lexicographic", a: "10", b: "abc", want: true},
		{name: "equal", a: "5", b: "5", want: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := LessNumericAware(tt.a, tt.b); got != tt.want {
				t.Errorf("LessNumericAware(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFormatFixed(t *testing.T) {
	testCases := []struct {
		name      string
		val       float64
		precision int
		want      string
	}{
		{name: "rounds up", val: 13.40499999999996, precision: 7, want: "13.4050000"},
		{name: "pads to precision", val: 1.5, precision: 7, want: "1.5000000"},
		{name: "negative", val: -33.8688197, precision: 7, want: "-33.8688197"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFixed(tt.val, tt.precision); got != tt.want {
				t.Errorf("FormatFixed(%v, %d) = %q, want %q", tt.val, tt.precision, got, tt.want)
			}
		})
	}
}

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("row not found")
	err := WrapErrorf(orig, ErrNotFound, "segment %s not found", "42")

	if !errors.Is(err, orig) {
		t.Error("wrapped error must match the original with errors.Is")
	}
	if ErrCode(err) != ErrNotFound {
		t.Errorf("ErrCode = %v, want ErrNotFound", ErrCode(err))
	}
	if ErrCode(errors.New("plain")) != nil {
		t.Error("ErrCode of an unwrapped error must be nil")
	}
}

func TestReverseG(t *testing.T) {
	in := []int{1, 2, 3}
	out := ReverseG(in)
	if out[0] != 3 || out[1] != 2 || out[2] != 1 {
		t.Errorf("ReverseG = %v", out)
	}
	if in[0] != 1 {
		t.Error("ReverseG must not mutate its input")
	}
}
