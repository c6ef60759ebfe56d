package cluster

import "math"

// CosineSimilarity returns the cosine of the angle between a and b.
// ok is false when the vectors cannot be compared: either is empty or has
// zero norm, or their lengths differ.
func CosineSimilarity(a, b []float32) (sim float64, ok bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}

// similar reports whether a and b are comparable and strictly more similar
// than threshold.
func similar(a, b []float32, threshold float64) bool {
	sim, ok := CosineSimilarity(a, b)
	return ok && sim > threshold
}
