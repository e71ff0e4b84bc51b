package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"insight/internal/agent"
	"insight/internal/domain"
	"insight/internal/port"
)

const extractionPrompt = `From the following user input, extract:
1. The main question or information request
2. The product, audience, or subject they are asking about

User input: %q

Respond with only a JSON object:
{"question": "the core question", "audience": "the product or audience, or null if unclear"}`

const classificationPrompt = `Classify the following question into exactly one of these categories:
- demographics (age, gender, location, income, education)
- interests (preferences, activities, pastimes)
- keywords (key phrases, features, aspects mentioned)
- usage (how customers use products, usage patterns)
- satisfaction (customer satisfaction, sentiment)
- purchase (buying patterns, purchase timing)
- personality (personality traits)
- lifestyle (lifestyle patterns)
- values (values, priorities)

Question: %q

Respond with just one word - the category name.`

// Patterns that catch an audience mention when the LLM extraction fails.
var audiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:about|for|of|who (?:use|buy|purchase)|regarding) ([^?.,]+)`),
	regexp.MustCompile(`(?i)([^?.,]+) (?:users|customers|buyers|audience)`),
	regexp.MustCompile(`(?i)people (?:who|that) (?:use|buy|like) ([^?.,]+)`),
}

var fillerWordsRe = regexp.MustCompile(`(?i)\b(the|my|your|their|our)\b`)

// AskUseCase runs the full question-answering pipeline: extract the question
// and audience, classify, gather evidence, run the routed analysis agent,
// and enhance with recommendations. Each step transforms an explicit State.
type AskUseCase struct {
	llm         port.LLM
	registry    *agent.Registry
	recommender *agent.Recommender
	gatherer    *EvidenceGatherer
	log         *zap.Logger
}

func NewAskUseCase(
	llm port.LLM,
	registry *agent.Registry,
	recommender *agent.Recommender,
	gatherer *EvidenceGatherer,
	logger *zap.Logger,
) *AskUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AskUseCase{
		llm:         llm,
		registry:    registry,
		recommender: recommender,
		gatherer:    gatherer,
		log:         logger,
	}
}

// Ask processes one user input end to end. Retrieval and enhancement degrade
// rather than fail; only a broken analysis LLM call surfaces as an error.
func (u *AskUseCase) Ask(input string) (domain.Result, error) {
	state := domain.State{Input: input}

	state = u.extractQuery(state)
	if state.Audience == "" {
		return domain.Result{
			Status:  "clarification_needed",
			Message: "I need to know what product or audience you're interested in learning about. Could you please clarify?",
		}, nil
	}

	state = u.classify(state)
	state.Evidence = u.gatherer.Gather(state.Audience)

	analyst, err := u.registry.Get(state.Kind)
	if err != nil {
		return domain.Result{}, err
	}
	analysis, err := analyst.Analyze(state.Question, state.Audience, state.Evidence)
	if err != nil {
		return domain.Result{}, fmt.Errorf("analysis failed: %w", err)
	}
	state.Analysis = u.recommender.Enhance(analysis)

	return domain.Result{Status: "ok", Analysis: state.Analysis}, nil
}

type extractedQuery struct {
	Question string `json:"question"`
	Audience string `json:"audience"`
}

// extractQuery pulls the core question and audience from free-form input,
// via the LLM first and pattern matching as fallback.
func (u *AskUseCase) extractQuery(state domain.State) domain.State {
	state.Question = state.Input

	response, err := u.llm.Generate(fmt.Sprintf(extractionPrompt, state.Input))
	if err != nil {
		u.log.Warn("query extraction failed, falling back to patterns", zap.Error(err))
		state.Audience = extractAudienceFallback(state.Input)
		return state
	}

	var info extractedQuery
	if jsonErr := json.Unmarshal([]byte(response), &info); jsonErr != nil {
		if obj := agent.ExtractJSON(response); obj != nil {
			info.Question, _ = obj["question"].(string)
			info.Audience, _ = obj["audience"].(string)
		}
	}

	if info.Question != "" {
		state.Question = info.Question
	}
	state.Audience = strings.TrimSpace(info.Audience)
	if state.Audience == "" || strings.EqualFold(state.Audience, "null") {
		state.Audience = extractAudienceFallback(state.Input)
	}
	return state
}

// classify routes the question to an analysis kind, defaulting to
// demographics when the model's answer is not a known category.
func (u *AskUseCase) classify(state domain.State) domain.State {
	state.Kind = domain.KindDemographics

	response, err := u.llm.Generate(fmt.Sprintf(classificationPrompt, state.Question))
	if err != nil {
		u.log.Warn("classification failed, defaulting to demographics", zap.Error(err))
		return state
	}

	kind := domain.AnalysisKind(strings.ToLower(strings.TrimSpace(response)))
	if kind.Valid() {
		state.Kind = kind
	}
	return state
}

// extractAudienceFallback matches common phrasings for the audience when the
// LLM found none.
func extractAudienceFallback(text string) string {
	for _, pattern := range audiencePatterns {
		matches := pattern.FindStringSubmatch(text)
		if len(matches) < 2 {
			continue
		}
		audience := strings.TrimSpace(matches[1])
		audience = strings.TrimSpace(fillerWordsRe.ReplaceAllString(audience, ""))
		audience = strings.Join(strings.Fields(audience), " ")
		if audience != "" {
			return audience
		}
	}
	return ""
}
