package usecase

import (
	"strings"

	"go.uber.org/zap"

	"insight/internal/adapter/cache"
	"insight/internal/port"
)

// VectorQuerier answers best-effort similarity queries with raw texts.
type VectorQuerier interface {
	Query(text string, k int) []string
}

// EvidenceGatherer fuses vector-similarity results and keyword matches into
// one bounded, deduplicated evidence list for the analysis agents.
type EvidenceGatherer struct {
	vectors     VectorQuerier
	keywords    port.KeywordStore
	cache       *cache.EvidenceCache
	vectorLimit int
	maxEvidence int
	log         *zap.Logger
}

func NewEvidenceGatherer(
	vectors VectorQuerier,
	keywords port.KeywordStore,
	evidenceCache *cache.EvidenceCache,
	vectorLimit int,
	maxEvidence int,
	logger *zap.Logger,
) *EvidenceGatherer {
	if vectorLimit <= 0 {
		vectorLimit = 50
	}
	if maxEvidence <= 0 {
		maxEvidence = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvidenceGatherer{
		vectors:     vectors,
		keywords:    keywords,
		cache:       evidenceCache,
		vectorLimit: vectorLimit,
		maxEvidence: maxEvidence,
		log:         logger,
	}
}

// Gather returns the evidence set for an audience: vector results first,
// then keyword matches, exact-string duplicates removed keeping the first
// occurrence, truncated to the configured cap. The order is deterministic
// for a given store state. Gather never fails; an empty audience or a fully
// degraded retrieval yields an empty list.
func (g *EvidenceGatherer) Gather(audience string) []string {
	audience = strings.TrimSpace(audience)
	if audience == "" {
		return nil
	}

	if g.cache != nil {
		if cached, hit := g.cache.Get(audience); hit {
			return cached
		}
	}

	var combined []string
	if g.vectors != nil {
		combined = append(combined, g.vectors.Query(audience, g.vectorLimit)...)
	}
	if g.keywords != nil {
		matches, err := g.keywords.Search(audience)
		if err != nil {
			g.log.Warn("keyword search failed, continuing with vector evidence only", zap.Error(err))
		} else {
			combined = append(combined, matches...)
		}
	}

	evidence := dedupe(combined, g.maxEvidence)

	if g.cache != nil {
		g.cache.Put(audience, evidence)
	}
	return evidence
}

// dedupe removes exact-string duplicates keeping first occurrence, then
// truncates to limit.
func dedupe(items []string, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}
