package cli

import (
	"fmt"
	"time"

	"insight/config"
	"insight/internal/adapter/cache"
	"insight/internal/adapter/embedding"
	"insight/internal/adapter/llm"
	"insight/internal/adapter/store"
	"insight/internal/adapter/vecstore"
	"insight/internal/port"
	"insight/internal/usecase"
)

// app bundles the wired components a command needs. Commands build it,
// use it, and Close it.
type app struct {
	reviews   *store.ReviewStore
	vectors   *vecstore.Store
	retriever *usecase.Retriever // nil when embeddings are disabled
	gatherer  *usecase.EvidenceGatherer
	cache     *cache.EvidenceCache
}

func newApp() (*app, error) {
	if err := config.EnsureStateDir(rootDir); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	reviews, err := store.NewReviewStore(config.ReviewDBPath(rootDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open review store: %w", err)
	}

	vectors := vecstore.Open(config.VectorDir(rootDir), logger)

	var retriever *usecase.Retriever
	if cfg.Embedding.Enabled {
		embedder, err := newEmbedder()
		if err != nil {
			reviews.Close()
			return nil, err
		}
		retriever = usecase.NewRetriever(embedder, vectors, cfg.Embedding.BatchSize, logger)
	}

	evidenceCache := cache.NewEvidenceCache(
		cfg.Retrieve.CacheSize,
		time.Duration(cfg.Retrieve.CacheTTLSecs)*time.Second,
	)

	var querier usecase.VectorQuerier
	if retriever != nil {
		querier = retriever
	}
	gatherer := usecase.NewEvidenceGatherer(
		querier, reviews, evidenceCache,
		cfg.Retrieve.VectorLimit, cfg.Retrieve.MaxEvidence, logger,
	)

	return &app{
		reviews:   reviews,
		vectors:   vectors,
		retriever: retriever,
		gatherer:  gatherer,
		cache:     evidenceCache,
	}, nil
}

func (a *app) Close() {
	a.reviews.Close()
}

func newEmbedder() (port.Embedder, error) {
	opts := embedding.Options{
		Model:     cfg.Embedding.Model,
		BaseURL:   cfg.Embedding.BaseURL,
		APIKeyEnv: cfg.Embedding.APIKeyEnv,
		Dimension: cfg.Embedding.Dimension,
		BatchSize: cfg.Embedding.BatchSize,
		Timeout:   time.Duration(cfg.Embedding.TimeoutSecs) * time.Second,
	}

	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.New(opts)
	case "ollama":
		return embedding.NewOllama(opts)
	case "mock":
		dim := cfg.Embedding.Dimension
		if dim <= 0 {
			dim = 64
		}
		return embedding.NewMockEmbedder(dim), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}

func newLLM() (port.LLM, error) {
	opts := llm.Options{
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	}

	switch cfg.LLM.Provider {
	case "openai":
		return llm.New(opts)
	case "ollama":
		return llm.NewOllama(opts), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
}
