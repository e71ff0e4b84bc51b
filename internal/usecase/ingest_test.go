package usecase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"insight/internal/adapter/cache"
	"insight/internal/adapter/fs"
	"insight/internal/adapter/store"
)

func newIngestFixture(t *testing.T, retriever *Retriever, evidenceCache *cache.EvidenceCache) (*IngestUseCase, *store.ReviewStore, string) {
	t.Helper()
	dir := t.TempDir()
	reviews, err := store.NewReviewStore(filepath.Join(dir, "reviews.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { reviews.Close() })

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}

	uc := NewIngestUseCase(reviews, retriever, fs.NewWalker(nil, nil), evidenceCache, nil)
	return uc, reviews, dataDir
}

func writeCSV(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIngestLoadsRows(t *testing.T) {
	uc, reviews, dataDir := newIngestFixture(t, nil, nil)
	writeCSV(t, filepath.Join(dataDir, "reviews.csv"),
		"reviewer,review\nAna,Great laptop\nBen,Poor battery\n")

	result, err := uc.Ingest(dataDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesIngested != 1 || result.RowsAdded != 2 {
		t.Errorf("expected 1 file / 2 rows, got %+v", result)
	}

	matches, err := reviews.Search("laptop")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("ingested rows not searchable: %v", matches)
	}
}

func TestIngestSkipsUnchangedFiles(t *testing.T) {
	uc, _, dataDir := newIngestFixture(t, nil, nil)
	writeCSV(t, filepath.Join(dataDir, "reviews.csv"), "reviewer,review\nAna,fine\n")

	if _, err := uc.Ingest(dataDir, nil); err != nil {
		t.Fatal(err)
	}
	result, err := uc.Ingest(dataDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesSkipped != 1 || result.RowsAdded != 0 {
		t.Errorf("expected unchanged file to be skipped, got %+v", result)
	}
}

func TestIngestReingestsModifiedFiles(t *testing.T) {
	uc, reviews, dataDir := newIngestFixture(t, nil, nil)
	path := filepath.Join(dataDir, "reviews.csv")
	writeCSV(t, path, "reviewer,review\nAna,first pass\n")

	if _, err := uc.Ingest(dataDir, nil); err != nil {
		t.Fatal(err)
	}

	writeCSV(t, path, "reviewer,review\nAna,first pass\nBen,second pass\n")
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	result, err := uc.Ingest(dataDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesIngested != 1 {
		t.Errorf("expected modified file to be re-ingested, got %+v", result)
	}

	matches, err := reviews.Search("second pass")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("new rows missing after re-ingest: %v", matches)
	}
}

func TestIngestRecordsBadFileAndContinues(t *testing.T) {
	uc, _, dataDir := newIngestFixture(t, nil, nil)
	writeCSV(t, filepath.Join(dataDir, "bad.csv"), "reviewer,review\n\"unterminated\n")
	writeCSV(t, filepath.Join(dataDir, "good.csv"), "reviewer,review\nAna,fine\n")

	result, err := uc.Ingest(dataDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesIngested != 1 {
		t.Errorf("good file should still ingest, got %+v", result)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected one recorded error, got %v", result.Errors)
	}
}

func TestIngestEmbedsRowsAndKeepsKeywordRowsOnFailure(t *testing.T) {
	embedder := &fakeEmbedder{dim: 2, failAt: 1}
	retriever := NewRetriever(embedder, newVecStore(t), 100, nil)
	uc, reviews, dataDir := newIngestFixture(t, retriever, nil)
	writeCSV(t, filepath.Join(dataDir, "reviews.csv"), "reviewer,review\nAna,fine\n")

	result, err := uc.Ingest(dataDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.RowsAdded != 1 || result.RowsEmbedded != 0 {
		t.Errorf("expected keyword rows without embeddings, got %+v", result)
	}
	if len(result.Errors) != 1 {
		t.Errorf("embedding failure should be recorded, got %v", result.Errors)
	}

	// The file stays marked as ingested so rows are not duplicated.
	second, err := uc.Ingest(dataDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.FilesSkipped != 1 {
		t.Errorf("expected file to be skipped on second run, got %+v", second)
	}
	if n, _ := reviews.Count(); n != 1 {
		t.Errorf("rows duplicated across runs: %d", n)
	}
}

func TestIngestInvalidatesEvidenceCache(t *testing.T) {
	evidenceCache := cache.NewEvidenceCache(10, time.Minute)
	evidenceCache.Put("drones", []string{"stale"})

	uc, _, dataDir := newIngestFixture(t, nil, evidenceCache)
	writeCSV(t, filepath.Join(dataDir, "reviews.csv"), "reviewer,review\nAna,fresh\n")

	if _, err := uc.Ingest(dataDir, nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := evidenceCache.Get("drones"); ok {
		t.Error("stale evidence survived ingestion")
	}
}
