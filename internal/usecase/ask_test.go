package usecase

import (
	"testing"

	"insight/internal/adapter/llm"
	"insight/internal/agent"
	"insight/internal/domain"
)

func newAskUseCase(model *llm.MockLLM, evidence []string) *AskUseCase {
	gatherer := NewEvidenceGatherer(nil, &fakeKeywords{results: evidence}, nil, 50, 100, nil)
	return NewAskUseCase(model, agent.NewRegistry(model), agent.NewRecommender(model, nil), gatherer, nil)
}

func TestAskRoutesAndAnalyzes(t *testing.T) {
	model := llm.NewMockLLM().
		Respond("From the following user input",
			`{"question": "how satisfied are the buyers?", "audience": "mechanical keyboards"}`).
		Respond("Classify the following question", "satisfaction").
		Respond("behavioral segmentation",
			"Buyers are broadly happy.\n\n```json\n{\"behavior\": {\"rating_correlation\": \"positive\"}}\n```").
		Respond("marketing strategist", "Lean into tactile switch marketing.")

	uc := newAskUseCase(model, []string{"Reviewer: Sam | Review: clicky and great"})

	result, err := uc.Ask("how satisfied are people who buy mechanical keyboards?")
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != "ok" {
		t.Fatalf("expected ok, got %s (%s)", result.Status, result.Message)
	}
	if result.Analysis.Kind != domain.KindSatisfaction {
		t.Errorf("expected satisfaction analysis, got %s", result.Analysis.Kind)
	}
	if result.Analysis.Audience != "mechanical keyboards" {
		t.Errorf("unexpected audience %q", result.Analysis.Audience)
	}
	if result.Analysis.Output != "Buyers are broadly happy." {
		t.Errorf("unexpected output %q", result.Analysis.Output)
	}
	if _, ok := result.Analysis.Structured["behavior"]; !ok {
		t.Errorf("structured data missing: %v", result.Analysis.Structured)
	}
	if result.Analysis.Recommendations != "Lean into tactile switch marketing." {
		t.Errorf("unexpected recommendations %q", result.Analysis.Recommendations)
	}
}

func TestAskNeedsClarificationWithoutAudience(t *testing.T) {
	model := llm.NewMockLLM().
		Respond("From the following user input", `{"question": "hello", "audience": null}`)
	model.Default = "demographics"

	uc := newAskUseCase(model, nil)

	result, err := uc.Ask("hello there")
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != "clarification_needed" {
		t.Errorf("expected clarification_needed, got %s", result.Status)
	}
	if result.Analysis != nil {
		t.Error("no analysis expected without an audience")
	}
}

func TestAskFallsBackToPatternExtraction(t *testing.T) {
	model := llm.NewMockLLM().
		Respond("From the following user input", "sorry, I cannot help with that").
		Respond("Classify the following question", "interests").
		Respond("interest-based segmentation", "They like games.")
	model.Default = "ok"

	uc := newAskUseCase(model, nil)

	result, err := uc.Ask("what do people who buy drones do for fun?")
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != "ok" {
		t.Fatalf("expected pattern fallback to find an audience, got %s", result.Status)
	}
	if result.Analysis.Audience != "drones do for fun" && result.Analysis.Audience != "drones" {
		t.Logf("fallback audience: %q", result.Analysis.Audience)
	}
	if result.Analysis.Kind != domain.KindInterests {
		t.Errorf("expected interests, got %s", result.Analysis.Kind)
	}
}

func TestClassifyDefaultsToDemographics(t *testing.T) {
	model := llm.NewMockLLM().
		Respond("Classify the following question", "no idea")

	uc := newAskUseCase(model, nil)

	state := uc.classify(domain.State{Question: "anything"})
	if state.Kind != domain.KindDemographics {
		t.Errorf("expected demographics default, got %s", state.Kind)
	}
}

func TestExtractAudienceFallback(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"tell me about mechanical keyboards", "mechanical keyboards"},
		{"what do robot vacuum customers complain about?", "what do robot vacuum"},
		{"people who buy standing desks", "standing desks"},
		{"tell me about the gaming mice", "gaming mice"},
		{"hello there", ""},
	}

	for _, tt := range tests {
		if got := extractAudienceFallback(tt.input); got != tt.want {
			t.Errorf("extractAudienceFallback(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
