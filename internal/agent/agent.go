package agent

import (
	"fmt"
	"strings"

	"insight/internal/domain"
	"insight/internal/port"
)

// Agent runs one analysis template against retrieved evidence.
type Agent struct {
	kind     domain.AnalysisKind
	template string
	llm      port.LLM
}

func newAgent(kind domain.AnalysisKind, template string, llm port.LLM) *Agent {
	return &Agent{kind: kind, template: template, llm: llm}
}

func (a *Agent) Kind() domain.AnalysisKind {
	return a.kind
}

// Analyze grounds the agent's template in the evidence and runs the LLM.
func (a *Agent) Analyze(question, audience string, evidence []string) (*domain.Analysis, error) {
	system := strings.ReplaceAll(a.template, "{audience}", audience)
	user := renderEvidence(question, evidence)

	response, err := a.llm.GenerateWithSystem(system, user)
	if err != nil {
		return nil, fmt.Errorf("%s analysis failed: %w", a.kind, err)
	}

	return &domain.Analysis{
		Kind:       a.kind,
		Question:   question,
		Audience:   audience,
		Structured: ExtractJSON(response),
		Output:     FormatOutput(response),
	}, nil
}

// renderEvidence builds the user message: the question followed by the
// retrieved reviews, or a note that none were found (the model then falls
// back to prior knowledge).
func renderEvidence(question string, evidence []string) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n\n")

	if len(evidence) == 0 {
		b.WriteString("No matching reviews were found; answer from typical user knowledge.")
		return b.String()
	}

	b.WriteString("Reviews:\n")
	for _, item := range evidence {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}
