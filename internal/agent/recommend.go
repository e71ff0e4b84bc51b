package agent

import (
	"strings"

	"go.uber.org/zap"

	"insight/internal/domain"
	"insight/internal/port"
)

// Recommender enhances a finished analysis with marketing recommendations.
type Recommender struct {
	llm port.LLM
	log *zap.Logger
}

func NewRecommender(llm port.LLM, logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommender{llm: llm, log: logger}
}

// Enhance fills in analysis.Recommendations. Enhancement is optional polish:
// an LLM failure is logged and the analysis is returned unchanged.
func (r *Recommender) Enhance(analysis *domain.Analysis) *domain.Analysis {
	system := strings.ReplaceAll(recommendationPrompt, "{kind}", string(analysis.Kind))
	system = strings.ReplaceAll(system, "{audience}", analysis.Audience)

	response, err := r.llm.GenerateWithSystem(system, analysis.Output)
	if err != nil {
		r.log.Warn("recommendation enhancement failed, returning analysis as-is", zap.Error(err))
		return analysis
	}

	analysis.Recommendations = strings.TrimSpace(response)
	return analysis
}
