package models

import (
	"math"
	"testing"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"horizontal", Horizontal, false},
		{"vertical", Vertical, false},
		{"", Horizontal, false},
		{"diagonal", "", true},
		{"Vertical", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrientation(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseOrientation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrientation_ToggleTwiceIsIdentity(t *testing.T) {
	for _, o := range []Orientation{Horizontal, Vertical} {
		if o.Toggle() == o {
			t.Fatalf("%v.Toggle() must change orientation", o)
		}
		if o.Toggle().Toggle() != o {
			t.Fatalf("%v toggled twice must be unchanged", o)
		}
	}
}

func TestOrientation_Angle(t *testing.T) {
	if Horizontal.Angle() != 0 {
		t.Fatalf("horizontal angle: got %v", Horizontal.Angle())
	}
	if math.Abs(Vertical.Angle()-math.Pi/2) > 1e-12 {
		t.Fatalf("vertical angle: got %v", Vertical.Angle())
	}
}
