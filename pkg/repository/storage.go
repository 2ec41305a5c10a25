package repository

import (
	"context"

	"github.com/m-mizutani/kith/pkg/interfaces"
	"github.com/m-mizutani/kith/pkg/utils/logging"
)

// Storage puts a never-fail face on a KVS backend. Backend faults are logged
// and reported as an absent value or a false result; nothing is returned as
// an error and nothing is retried.
type Storage struct {
	kvs interfaces.KVS
}

// NewStorage wraps kvs
func NewStorage(kvs interfaces.KVS) *Storage {
	return &Storage{kvs: kvs}
}

// GetItem returns the value under key and whether it was present
func (s *Storage) GetItem(ctx context.Context, key string) (string, bool) {
	value, found, err := s.kvs.Get(ctx, key)
	if err != nil {
		logging.From(ctx).Error("storage get failed", "key", key, "error", err)
		return "", false
	}
	return value, found
}

// SetItem stores value under key and reports success
func (s *Storage) SetItem(ctx context.Context, key, value string) bool {
	if err := s.kvs.Set(ctx, key, value); err != nil {
		logging.From(ctx).Error("storage set failed", "key", key, "error", err)
		return false
	}
	return true
}

// RemoveItem deletes key and reports success
func (s *Storage) RemoveItem(ctx context.Context, key string) bool {
	if err := s.kvs.Delete(ctx, key); err != nil {
		logging.From(ctx).Error("storage remove failed", "key", key, "error", err)
		return false
	}
	return true
}
