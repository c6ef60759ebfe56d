package cluster

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		a, b   []float32
		want   float64
		wantOK bool
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1, wantOK: true},
		{name: "scaled", a: []float32{1, 0}, b: []float32{5, 0}, want: 1, wantOK: true},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0, wantOK: true},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1, wantOK: true},
		{name: "zero norm", a: []float32{0, 0}, b: []float32{1, 0}, wantOK: false},
		{name: "length mismatch", a: []float32{1, 0}, b: []float32{1, 0, 0}, wantOK: false},
		{name: "empty", a: nil, b: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CosineSimilarity(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("CosineSimilarity() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilar_StrictThreshold(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0}
	if similar(a, b, 1) {
		t.Errorf("similarity equal to threshold must not match")
	}
	if !similar(a, b, 0.99) {
		t.Errorf("similarity above threshold must match")
	}
}
