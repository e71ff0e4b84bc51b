package store

import (
	"encoding/binary"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"insight/internal/port"
)

var (
	bucketReviews = []byte("reviews")
	bucketSources = []byte("sources")
	bucketMeta    = []byte("meta")
	keySchema     = []byte("schema_version")
)

// schemaVersion is bumped when the stored layout changes; a mismatch clears
// the store so it can be re-ingested from the source files.
const schemaVersion uint64 = 1

// ReviewStore keeps rendered review rows in BoltDB and answers
// case-insensitive substring queries over them in insertion (row) order.
// It also tracks which source files have been ingested, for incremental
// re-ingestion.
type ReviewStore struct {
	db *bbolt.DB
}

var _ port.KeywordStore = (*ReviewStore)(nil)

// NewReviewStore opens (or creates) the review database at path.
func NewReviewStore(path string) (*ReviewStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open review db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketReviews, bucketSources, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return checkSchema(tx)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ReviewStore{db: db}, nil
}

// checkSchema clears the store when it was written by an older layout.
func checkSchema(tx *bbolt.Tx) error {
	meta := tx.Bucket(bucketMeta)
	if stored := meta.Get(keySchema); stored != nil {
		if binary.BigEndian.Uint64(stored) == schemaVersion {
			return nil
		}
		for _, name := range [][]byte{bucketReviews, bucketSources} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], schemaVersion)
	return meta.Put(keySchema, buf[:])
}

// Append stores rendered review rows, preserving insertion order.
func (s *ReviewStore) Append(texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketReviews)
		for _, text := range texts {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			var key [8]byte
			binary.BigEndian.PutUint64(key[:], seq)
			if err := b.Put(key[:], []byte(text)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Search returns every stored row containing query, case-insensitive,
// in row order. An empty query matches nothing.
func (s *ReviewStore) Search(query string) ([]string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	var matches []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketReviews).ForEach(func(k, v []byte) error {
			if strings.Contains(strings.ToLower(string(v)), query) {
				matches = append(matches, string(v))
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Count returns the number of stored rows.
func (s *ReviewStore) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketReviews).Stats().KeyN
		return nil
	})
	return n, err
}

// SourceModTime returns the recorded modification time for an ingested
// source file, if any.
func (s *ReviewStore) SourceModTime(path string) (int64, bool) {
	var mod int64
	var ok bool
	s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketSources).Get([]byte(path)); v != nil {
			mod = int64(binary.BigEndian.Uint64(v))
			ok = true
		}
		return nil
	})
	return mod, ok
}

// PutSource records that a source file was ingested at the given mod time.
func (s *ReviewStore) PutSource(path string, modTime int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(modTime))
		return tx.Bucket(bucketSources).Put([]byte(path), buf[:])
	})
}

// Close closes the underlying database.
func (s *ReviewStore) Close() error {
	return s.db.Close()
}
