package agent

import (
	"fmt"

	"insight/internal/domain"
	"insight/internal/port"
)

// Registry holds the analysis agents. It is constructed once and passed to
// the pipeline by value reference; there is no package-level agent state.
type Registry struct {
	agents map[domain.AnalysisKind]*Agent
}

// NewRegistry builds an agent per analysis kind, all sharing one LLM.
func NewRegistry(llm port.LLM) *Registry {
	agents := make(map[domain.AnalysisKind]*Agent, len(promptTemplates))
	for kind, template := range promptTemplates {
		agents[kind] = newAgent(kind, template, llm)
	}
	return &Registry{agents: agents}
}

// Get returns the agent for a kind.
func (r *Registry) Get(kind domain.AnalysisKind) (*Agent, error) {
	agent, ok := r.agents[kind]
	if !ok {
		return nil, fmt.Errorf("no agent for analysis kind %q", kind)
	}
	return agent, nil
}

// Kinds returns the registered analysis kinds in routing order.
func (r *Registry) Kinds() []domain.AnalysisKind {
	return domain.Kinds
}
