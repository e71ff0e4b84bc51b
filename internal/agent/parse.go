package agent

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonObjectRe    = regexp.MustCompile(`\{[\s\S]*\}`)
	trailingFenceRe = regexp.MustCompile("\n```(?:json)?[\\s\\S]*```\\s*$")
	trailingJSONRe  = regexp.MustCompile(`\n\{[\s\S]*\}\s*$`)
)

// ExtractJSON pulls the first JSON object out of an LLM response. Responses
// often wrap the object in prose or code fences; the widest brace span is
// tried first, then the whole response. A response with no parseable object
// yields an empty map, not an error.
func ExtractJSON(response string) map[string]any {
	var out map[string]any

	if match := jsonObjectRe.FindString(response); match != "" {
		if err := json.Unmarshal([]byte(match), &out); err == nil {
			return out
		}
	}
	if err := json.Unmarshal([]byte(response), &out); err == nil {
		return out
	}
	return map[string]any{}
}

// FormatOutput strips a trailing JSON block (fenced or raw) from an LLM
// response, leaving the human-readable part.
func FormatOutput(response string) string {
	formatted := trailingFenceRe.ReplaceAllString(response, "")
	formatted = trailingJSONRe.ReplaceAllString(formatted, "")
	return strings.TrimSpace(formatted)
}
