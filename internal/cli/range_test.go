package cli

import (
	"slices"
	"testing"

	"github.com/otobench/otobench/pkg/errors"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "Single", input: "50", want: []int{50}},
		{name: "Sweep", input: "10:40:10", want: []int{10, 20, 30, 40}},
		{name: "SweepUneven", input: "1:10:4", want: []int{1, 5, 9}},
		{name: "DegenerateSweep", input: "5:5:1", want: []int{5}},
		{name: "Empty", input: "", wantErr: true},
		{name: "Junk", input: "abc", wantErr: true},
		{name: "TwoParts", input: "1:2", wantErr: true},
		{name: "ZeroStep", input: "1:5:0", wantErr: true},
		{name: "Backwards", input: "10:1:2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := parseRange(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidArgument) {
					t.Fatalf("parseRange(%q) error = %v, want INVALID_ARGUMENT", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRange(%q): %v", tt.input, err)
			}
			if got := r.IntValues(); !slices.Equal(got, tt.want) {
				t.Errorf("IntValues() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgeCount(t *testing.T) {
	tests := []struct {
		value      float64
		v          int
		conversion int
		want       int
	}{
		{500, 100, convEdges, 500},
		{2.5, 100, convOutdegree, 250},
		{0.1, 100, convDensity, 495},
	}
	for _, tt := range tests {
		if got := edgeCount(tt.value, tt.v, tt.conversion); got != tt.want {
			t.Errorf("edgeCount(%v, %d, %d) = %d, want %d", tt.value, tt.v, tt.conversion, got, tt.want)
		}
	}
}
