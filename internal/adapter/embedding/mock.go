package embedding

// MockEmbedder produces deterministic per-character vectors. Useful for
// tests and for trying the pipeline without an embedding backend.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, e.dimension)
		j := 0
		for _, r := range text {
			v[j%e.dimension] += float32(r) / 1000.0
			j++
		}
		embeddings[i] = v
	}
	return embeddings, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
