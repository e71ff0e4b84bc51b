package llm

import "strings"

// MockLLM returns canned responses keyed by substring of the prompt, in
// registration order, falling back to Default. Used in tests.
type MockLLM struct {
	rules   []mockRule
	Default string
	Err     error
}

type mockRule struct {
	contains string
	response string
}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// Respond registers a canned response for prompts containing the substring.
func (m *MockLLM) Respond(contains, response string) *MockLLM {
	m.rules = append(m.rules, mockRule{contains: contains, response: response})
	return m
}

func (m *MockLLM) Generate(prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	for _, rule := range m.rules {
		if rule.contains != "" && strings.Contains(prompt, rule.contains) {
			return rule.response, nil
		}
	}
	return m.Default, nil
}

func (m *MockLLM) GenerateWithSystem(systemPrompt, userPrompt string) (string, error) {
	return m.Generate(systemPrompt + "\n" + userPrompt)
}

func (m *MockLLM) ModelName() string {
	return "mock"
}
