package usecase

import (
	"fmt"

	"go.uber.org/zap"

	"insight/internal/port"
)

// Retriever bridges the embedder and the vector index. It is the only
// component that turns raw text into vectors.
type Retriever struct {
	embedder  port.Embedder
	index     port.VectorIndex
	batchSize int
	log       *zap.Logger
}

// NewRetriever creates a retriever. batchSize bounds how many texts are
// embedded and committed per slice during indexing.
func NewRetriever(embedder port.Embedder, index port.VectorIndex, batchSize int, logger *zap.Logger) *Retriever {
	if batchSize <= 0 {
		batchSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{
		embedder:  embedder,
		index:     index,
		batchSize: batchSize,
		log:       logger,
	}
}

// IndexTexts embeds texts in batches and appends each batch to the index.
// Batches commit independently: a failure part-way leaves earlier batches
// durably indexed and returns how many texts made it in. The optional
// progress callback fires after every committed batch.
func (r *Retriever) IndexTexts(texts []string, progress func(done, total int)) (int, error) {
	total := len(texts)
	done := 0

	for start := 0; start < total; start += r.batchSize {
		end := start + r.batchSize
		if end > total {
			end = total
		}
		batch := texts[start:end]

		vectors, err := r.embedder.Embed(batch)
		if err != nil {
			return done, fmt.Errorf("failed to embed batch at %d: %w", start, err)
		}
		if err := r.index.Add(vectors, batch); err != nil {
			return done, fmt.Errorf("failed to index batch at %d: %w", start, err)
		}

		done = end
		if progress != nil {
			progress(done, total)
		}
	}

	return done, nil
}

// Query embeds the query text and returns the texts of its k nearest
// neighbors, nearest first. Retrieval is best-effort evidence: embedding or
// search failures are logged and yield an empty result instead of an error.
func (r *Retriever) Query(text string, k int) []string {
	if text == "" || k <= 0 {
		return nil
	}

	vectors, err := r.embedder.Embed([]string{text})
	if err != nil || len(vectors) == 0 {
		r.log.Warn("query embedding failed, returning no vector evidence", zap.Error(err))
		return nil
	}

	neighbors, err := r.index.Search(vectors[0], k)
	if err != nil {
		r.log.Warn("vector search failed, returning no vector evidence", zap.Error(err))
		return nil
	}

	texts := make([]string, len(neighbors))
	for i, n := range neighbors {
		texts[i] = n.Text
	}
	return texts
}
