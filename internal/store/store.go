// Package store is the persistence adapter for the todo screen.
// It reads and writes JSON arrays under string keys in a local key-value backend.
//
// Read faults of any kind (backend error, malformed JSON, schema violation) are logged
// and reported as "no data", so the screen always starts from whatever it can recover.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// KV is a byte-oriented key-value backend.
type KV interface {
	// Get returns the value stored under key. found is false for a missing key.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases backend resources.
	Close() error
}

// Store loads and saves JSON-encoded sequences through a KV backend.
type Store struct {
	kv        KV
	validator *Validator
	logger    *log.Logger
}

// New creates a Store over kv. validator may be nil to skip schema checks,
// and a nil logger discards.
func New(kv KV, validator *Validator, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{kv: kv, validator: validator, logger: logger}
}

// Load decodes the array stored under key into dst (a pointer to a slice).
// It returns false when the key is missing or cannot be read; the cause is logged.
func (s *Store) Load(ctx context.Context, key string, dst any) bool {
	data, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Error("error loading from storage", "key", key, "err", err)
		return false
	}
	if !found {
		s.logger.Debug("no stored value", "key", key)
		return false
	}

	if s.validator != nil {
		if err := s.validator.Validate(key, data); err != nil {
			s.logger.Error("discarding invalid stored value", "key", key, "err", err)
			return false
		}
	}

	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Error("error decoding stored value", "key", key, "err", err)
		return false
	}
	return true
}

// Save encodes v as JSON and stores it under key.
// A nil slice is stored as an empty array.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.SaveRaw(ctx, key, data)
}

// SaveRaw stores already-encoded data under key.
func (s *Store) SaveRaw(ctx context.Context, key string, data []byte) error {
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Encode marshals v to JSON, writing nil slices as [].
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return []byte("[]"), nil
	}
	return data, nil
}

// LoadList loads the sequence stored under key, returning nil when there is none.
func LoadList[T any](ctx context.Context, s *Store, key string) []T {
	var items []T
	if !s.Load(ctx, key, &items) {
		return nil
	}
	return items
}
