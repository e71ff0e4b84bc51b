package agent

import (
	"reflect"
	"testing"
)

func TestExtractJSONFromProse(t *testing.T) {
	response := `Here is the analysis you asked for:

{"demographics": {"age_range": "25-34"}}

Let me know if you need more.`

	out := ExtractJSON(response)
	demo, ok := out["demographics"].(map[string]any)
	if !ok {
		t.Fatalf("expected demographics object, got %v", out)
	}
	if demo["age_range"] != "25-34" {
		t.Errorf("unexpected age_range: %v", demo["age_range"])
	}
}

func TestExtractJSONFromFencedBlock(t *testing.T) {
	response := "Summary text.\n```json\n{\"keywords\": {\"key_features\": [\"durable\"]}}\n```"

	out := ExtractJSON(response)
	if _, ok := out["keywords"]; !ok {
		t.Errorf("expected keywords object, got %v", out)
	}
}

func TestExtractJSONBareObject(t *testing.T) {
	out := ExtractJSON(`{"a": 1}`)
	if out["a"] != float64(1) {
		t.Errorf("expected a=1, got %v", out)
	}
}

func TestExtractJSONGarbage(t *testing.T) {
	out := ExtractJSON("no json here at all")
	if out == nil {
		t.Fatal("expected empty map, got nil")
	}
	if len(out) != 0 {
		t.Errorf("expected empty map, got %v", out)
	}
}

func TestFormatOutputStripsTrailingJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "fenced block",
			response: "Readable summary.\n```json\n{\"x\": 1}\n```",
			want:     "Readable summary.",
		},
		{
			name:     "raw object",
			response: "Readable summary.\n{\"x\": 1}",
			want:     "Readable summary.",
		},
		{
			name:     "plain text untouched",
			response: "Just a summary.",
			want:     "Just a summary.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatOutput(tt.response); got != tt.want {
				t.Errorf("FormatOutput(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}

func TestExtractJSONTypes(t *testing.T) {
	out := ExtractJSON(`{"list": ["a", "b"], "nested": {"k": "v"}}`)
	want := map[string]any{
		"list":   []any{"a", "b"},
		"nested": map[string]any{"k": "v"},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("expected %v, got %v", want, out)
	}
}
