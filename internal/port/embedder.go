package port

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates embeddings for the given texts.
	// Returns a slice of vectors, one per input text.
	Embed(texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}

// VectorIndex stores texts alongside their embeddings and answers
// nearest-neighbor queries over them.
type VectorIndex interface {
	// Add appends vectors and their source texts in matching order.
	// len(vectors) must equal len(texts).
	Add(vectors [][]float32, texts []string) error

	// Search returns up to k entries nearest to the query, ascending
	// by distance. An empty index yields an empty result, not an error.
	Search(query []float32, k int) ([]Neighbor, error)

	// Size returns the number of indexed entries.
	Size() int
}

// Neighbor is one vector search hit.
type Neighbor struct {
	Text     string
	Distance float32
}
