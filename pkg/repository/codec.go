package repository

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
	"github.com/m-mizutani/kith/pkg/utils/logging"
)

// Keys of the persisted collections
const (
	KeyPeople      = "people"
	KeyUserDetails = "user_details"
)

// loadCollection reads the JSON array under key. A missing key, a read fault
// or corrupt JSON all yield an empty collection; corruption is logged.
func loadCollection[T any](ctx context.Context, s *Storage, key string) []*T {
	raw, found := s.GetItem(ctx, key)
	if !found || raw == "" {
		return []*T{}
	}

	var items []*T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logging.From(ctx).Error("corrupt collection in store, falling back to empty",
			"key", key, "error", err)
		return []*T{}
	}

	// drop JSON nulls so callers never see a nil record
	records := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			records = append(records, item)
		}
	}
	return records
}

// loadRecord reads the JSON object under key. nil means absent or corrupt.
func loadRecord[T any](ctx context.Context, s *Storage, key string) *T {
	raw, found := s.GetItem(ctx, key)
	if !found || raw == "" || raw == "null" {
		return nil
	}

	var record T
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		logging.From(ctx).Error("corrupt record in store, treating as absent",
			"key", key, "error", err)
		return nil
	}
	return &record
}

// save encodes v as JSON and writes it under key
func save(ctx context.Context, s *Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return goerr.Wrap(model.ErrEncode, "failed to marshal collection",
			goerr.V("key", key), goerr.V("error", err.Error()))
	}

	if !s.SetItem(ctx, key, string(data)) {
		return goerr.Wrap(model.ErrStoreWrite, "failed to persist collection", goerr.V("key", key))
	}
	return nil
}
