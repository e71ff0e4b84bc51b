package store

import (
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *ReviewStore {
	t.Helper()
	s, err := NewReviewStore(filepath.Join(t.TempDir(), "reviews.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	s := newTestStore(t)
	rows := []string{
		"Reviewer: Ana | Review: Great LAPTOP for travel",
		"Reviewer: Ben | Review: the phone broke",
		"Reviewer: Cal | Review: decent laptop stand",
	}
	if err := s.Append(rows); err != nil {
		t.Fatal(err)
	}

	matches, err := s.Search("laptop")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{rows[0], rows[2]}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("expected %v, got %v", want, matches)
	}
}

func TestSearchPreservesRowOrder(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append([]string{"z row", "a row", "m row"}); err != nil {
		t.Fatal(err)
	}

	matches, err := s.Search("row")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"z row", "a row", "m row"}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("expected insertion order %v, got %v", want, matches)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append([]string{"anything"}); err != nil {
		t.Fatal(err)
	}

	matches, err := s.Search("   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("empty query should match nothing, got %v", matches)
	}
}

func TestCount(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected empty store, got %d", n)
	}

	if err := s.Append([]string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}
	if n, _ = s.Count(); n != 3 {
		t.Errorf("expected 3 rows, got %d", n)
	}
}

func TestSourceModTimeRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.SourceModTime("data/reviews.csv"); ok {
		t.Error("unexpected record for unseen source")
	}

	if err := s.PutSource("data/reviews.csv", 1700000000); err != nil {
		t.Fatal(err)
	}
	mod, ok := s.SourceModTime("data/reviews.csv")
	if !ok || mod != 1700000000 {
		t.Errorf("expected (1700000000, true), got (%d, %v)", mod, ok)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.db")
	s, err := NewReviewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Append([]string{"persisted row"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewReviewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	matches, err := s.Search("persisted")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0] != "persisted row" {
		t.Errorf("data lost across reopen: %v", matches)
	}
}
