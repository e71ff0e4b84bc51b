package vecstore

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"

	"insight/internal/port"
)

var (
	// ErrDimensionMismatch is returned when a vector's length disagrees
	// with the dimension fixed at first Add.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrCountMismatch is returned when Add receives vector and text
	// slices of different lengths.
	ErrCountMismatch = errors.New("vectors and texts length mismatch")
)

// Store is a persisted flat vector index paired with the ordered list of
// source texts it was built from. texts[i] is the source of the i-th vector,
// in insertion order; the two halves always have equal length.
//
// Search is exact squared-L2 over all entries. Callers that want cosine
// semantics must normalize their embeddings before indexing.
type Store struct {
	mu      sync.RWMutex
	dir     string
	dim     int // 0 until first Add or load
	vectors [][]float32
	texts   []string
	log     *zap.Logger
}

var _ port.VectorIndex = (*Store)(nil)

// Open loads the index persisted under dir, or starts empty when no usable
// index exists there. Load problems are logged, never fatal: a corrupt or
// half-written index degrades to a fresh one.
func Open(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{dir: dir, log: logger}

	if err := os.MkdirAll(dir, 0755); err != nil {
		s.log.Warn("cannot create vector index directory, store starts empty",
			zap.String("dir", dir), zap.Error(err))
		return s
	}

	dim, vectors, texts, err := load(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("existing vector index unreadable, starting empty",
				zap.String("dir", dir), zap.Error(err))
		}
		return s
	}

	s.dim = dim
	s.vectors = vectors
	s.texts = texts
	s.log.Info("loaded vector index",
		zap.String("dir", dir), zap.Int("entries", len(texts)), zap.Int("dimension", dim))
	return s
}

// Add appends vectors and their source texts in matching order and persists
// the store before returning. If persistence fails, the in-memory state is
// rolled back so no partial add survives.
func (s *Store) Add(vectors [][]float32, texts []string) error {
	if len(vectors) != len(texts) {
		return fmt.Errorf("%w: %d vectors, %d texts", ErrCountMismatch, len(vectors), len(texts))
	}
	if len(vectors) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dim := s.dim
	if dim == 0 {
		dim = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("%w: expected %d, got %d at position %d", ErrDimensionMismatch, dim, len(v), i)
		}
	}

	prevDim := s.dim
	prevLen := len(s.texts)

	s.dim = dim
	s.vectors = append(s.vectors, vectors...)
	s.texts = append(s.texts, texts...)

	if err := persist(s.dir, s.dim, s.vectors, s.texts); err != nil {
		s.vectors = s.vectors[:prevLen]
		s.texts = s.texts[:prevLen]
		s.dim = prevDim
		return fmt.Errorf("failed to persist vector index: %w", err)
	}

	return nil
}

// Search returns up to k entries nearest to the query by squared Euclidean
// distance, ascending. An empty store yields an empty result.
func (s *Store) Search(query []float32, k int) ([]port.Neighbor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vectors) == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != s.dim {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, s.dim, len(query))
	}

	type scored struct {
		idx  int
		dist float32
	}
	scores := make([]scored, len(s.vectors))
	for i, v := range s.vectors {
		scores[i] = scored{idx: i, dist: squaredL2(query, v)}
	}

	// Stable keeps insertion order among equal distances.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].dist < scores[j].dist
	})

	if k > len(scores) {
		k = len(scores)
	}
	results := make([]port.Neighbor, k)
	for i := 0; i < k; i++ {
		results[i] = port.Neighbor{
			Text:     s.texts[scores[i].idx],
			Distance: scores[i].dist,
		}
	}
	return results, nil
}

// Size returns the number of indexed entries.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.texts)
}

// Dimension returns the embedding dimension, or 0 while the store is empty
// and no dimension has been fixed.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
