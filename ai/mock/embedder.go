package mock

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/poiesic/moodshelf/ai"
)

var _ ai.Embedder = (*MockEmbedder)(nil)

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields and is safe
// for concurrent use.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, fixed vectors are used, then deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	mu      sync.Mutex
	vectors map[string][]float32
	calls   map[string]int
	total   int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		vectors: make(map[string][]float32),
		calls:   make(map[string]int),
	}
}

// WithVectors fixes the vector returned for each text.
func (m *MockEmbedder) WithVectors(vectors map[string][]float32) *MockEmbedder {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range vectors {
		m.vectors[k] = v
	}
	return m
}

// EmbedText returns the injected, fixed or hash-derived vector for text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.total++
	m.calls[text]++
	fixed, ok := m.vectors[text]
	fn := m.EmbedTextFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	if ok {
		return fixed, nil
	}

	// Default: generate deterministic vector from text hash
	return generateDeterministicVector(text, 384), nil
}

// CallCount returns the number of times EmbedText was called.
func (m *MockEmbedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

// CallsFor returns how often EmbedText was called with text.
func (m *MockEmbedder) CallsFor(text string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[text]
}

// Reset clears the call counts and injected behavior.
func (m *MockEmbedder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total = 0
	m.calls = make(map[string]int)
	m.vectors = make(map[string][]float32)
	m.EmbedTextFunc = nil
}

// generateDeterministicVector creates a deterministic embedding vector from text.
// It uses FNV hash to ensure the same text always produces the same vector.
func generateDeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000)/1000.0 - 0.5
	}
	return vector
}
