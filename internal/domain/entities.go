package domain

// AnalysisKind identifies one of the audience analysis templates.
type AnalysisKind string

const (
	KindDemographics AnalysisKind = "demographics"
	KindInterests    AnalysisKind = "interests"
	KindKeywords     AnalysisKind = "keywords"
	KindUsage        AnalysisKind = "usage"
	KindSatisfaction AnalysisKind = "satisfaction"
	KindPurchase     AnalysisKind = "purchase"
	KindPersonality  AnalysisKind = "personality"
	KindLifestyle    AnalysisKind = "lifestyle"
	KindValues       AnalysisKind = "values"
)

// Kinds lists every analysis kind in routing order.
var Kinds = []AnalysisKind{
	KindDemographics,
	KindInterests,
	KindKeywords,
	KindUsage,
	KindSatisfaction,
	KindPurchase,
	KindPersonality,
	KindLifestyle,
	KindValues,
}

// Valid reports whether k names a known analysis kind.
func (k AnalysisKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Analysis is the result of running one analysis agent.
type Analysis struct {
	Kind            AnalysisKind   `json:"kind"`
	Question        string         `json:"question"`
	Audience        string         `json:"audience"`
	Structured      map[string]any `json:"structured,omitempty"`
	Output          string         `json:"output"`
	Recommendations string         `json:"recommendations,omitempty"`
}

// State carries a request through the ask pipeline. Each step reads the
// fields it needs and fills in the ones it produces.
type State struct {
	Input    string
	Question string
	Audience string
	Kind     AnalysisKind
	Evidence []string
	Analysis *Analysis
}

// Result is the user-facing outcome of the ask pipeline.
type Result struct {
	Status   string    `json:"status"` // "ok" or "clarification_needed"
	Message  string    `json:"message,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
}
