package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Field names probed, in order, for the reviewer and the review body.
var (
	nameFields = []string{"reviewer", "name", "user", "author"}
	bodyFields = []string{"review", "comment", "feedback", "text", "description"}
)

const fieldSeparator = " | "

// LoadCSV reads a CSV file with a header row and renders every data row
// into a single review-like string.
func LoadCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil // header only, or empty
	}

	header := records[0]
	rows := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if rendered := RenderRow(header, record); rendered != "" {
			rows = append(rows, rendered)
		}
	}
	return rows, nil
}

// RenderRow formats one tabular row as a review-like string: the reviewer
// name field first, then the review body field, then every remaining
// non-empty field as "Field Name: value", joined by " | ".
func RenderRow(header, record []string) string {
	values := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(record) {
			values[strings.ToLower(strings.TrimSpace(col))] = strings.TrimSpace(record[i])
		}
	}

	var parts []string
	used := make(map[string]bool)

	for _, field := range nameFields {
		if v := values[field]; v != "" {
			parts = append(parts, "Reviewer: "+v)
			break
		}
	}
	for _, field := range bodyFields {
		if v := values[field]; v != "" {
			parts = append(parts, "Review: "+v)
			break
		}
	}
	for _, field := range nameFields {
		used[field] = true
	}
	for _, field := range bodyFields {
		used[field] = true
	}

	// Remaining fields keep the header's column order.
	for _, col := range header {
		field := strings.ToLower(strings.TrimSpace(col))
		if used[field] {
			continue
		}
		used[field] = true
		if v := values[field]; v != "" {
			parts = append(parts, titleCase(field)+": "+v)
		}
	}

	return strings.Join(parts, fieldSeparator)
}

// titleCase renders a snake_case column name as "Snake Case".
func titleCase(field string) string {
	words := strings.FieldsFunc(field, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
