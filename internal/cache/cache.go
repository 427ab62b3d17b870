// Package cache implements the HTTP response cache backed by BoltDB.
// API clients consult it before going to the network; entries expire
// after a configurable TTL.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const bucketResponses = "responses"

// Store is a TTL-bounded key/value cache for raw response bodies.
type Store struct {
	db  *bbolt.DB
	ttl time.Duration

	// now is stubbed in tests.
	now func() time.Time
}

// entry is the stored envelope for one response.
type entry struct {
	FetchedAt time.Time `json:"fetched_at"`
	Body      []byte    `json:"body"`
}

// Open opens or creates the cache database at path. Entries older than
// ttl are treated as misses and removed lazily.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketResponses))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache bucket: %w", err)
	}

	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached body for key, or ok=false on a miss or an
// expired entry. Expired entries are deleted on access.
func (s *Store) Get(key string) ([]byte, bool) {
	var e entry
	found := false
	corrupt := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(bucketResponses)).Get([]byte(key))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			// Unreadable entry: treat as a miss, drop it below.
			corrupt = true
			return nil
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, false
	}
	if corrupt {
		_ = s.delete(key) //nolint:errcheck
		return nil, false
	}
	if !found {
		return nil, false
	}

	if s.now().Sub(e.FetchedAt) > s.ttl {
		_ = s.delete(key) //nolint:errcheck
		return nil, false
	}

	return e.Body, true
}

// Put stores body under key with the current timestamp.
func (s *Store) Put(key string, body []byte) error {
	raw, err := json.Marshal(entry{FetchedAt: s.now(), Body: body})
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketResponses)).Put([]byte(key), raw)
	})
}

// Purge removes every cached entry.
func (s *Store) Purge() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketResponses)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketResponses))
		return err
	})
}

func (s *Store) delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketResponses)).Delete([]byte(key))
	})
}
