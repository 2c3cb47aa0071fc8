package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Well-known keys. Each key holds an independently overwritten JSON blob.
const (
	KeyTransactions  = "transactions"
	KeyLaborEntries  = "saved_labor_data"
	KeyDrivingLogs   = "qtex_driving_logs"
	KeyVehicles      = "qtex_vehicles"
	KeyContracts     = "qtex_contracts"
	KeyFiledRecords  = "qtex_filed_records"
	KeyTargetRevenue = "qtex_target_revenue"
)

// Store is a key-value store of JSON documents with last-write-wins semantics.
type Store interface {
	// Get returns the stored document, or nil when the key has never been set.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the document stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Factory opens the store scoped to a single book (one business's data).
type Factory func(bookID string) Store

// LoadList decodes the JSON array stored under key. A missing key is an empty list.
func LoadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	items := []T{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

// SaveList overwrites key with the JSON encoding of items.
func SaveList[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// LoadValue decodes a single JSON value. ok is false when the key is missing.
func LoadValue[T any](ctx context.Context, s Store, key string) (value T, ok bool, err error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return value, false, fmt.Errorf("load %s: %w", key, err)
	}
	if len(data) == 0 {
		return value, false, nil
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return value, true, nil
}

// SaveValue overwrites key with the JSON encoding of value.
func SaveValue[T any](ctx context.Context, s Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists every well-known key.
func Keys() []string {
	return []string{
		KeyTransactions, KeyLaborEntries, KeyDrivingLogs, KeyVehicles,
		KeyContracts, KeyFiledRecords, KeyTargetRevenue,
	}
}

// Export returns the documents of every well-known key that has been set.
func Export(ctx context.Context, s Store) (map[string]json.RawMessage, error) {
	docs := make(map[string]json.RawMessage)
	for _, key := range Keys() {
		data, err := s.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		if len(data) > 0 {
			docs[key] = json.RawMessage(data)
		}
	}
	return docs, nil
}

// Import overwrites the documents in docs. Unknown keys and invalid JSON are
// rejected before anything is written.
func Import(ctx context.Context, s Store, docs map[string]json.RawMessage) error {
	known := make(map[string]bool)
	for _, key := range Keys() {
		known[key] = true
	}
	for key, doc := range docs {
		if !known[key] {
			return fmt.Errorf("unknown key %q", key)
		}
		if !json.Valid(doc) {
			return fmt.Errorf("document %s is not valid JSON", key)
		}
	}
	for _, key := range Keys() {
		doc, ok := docs[key]
		if !ok {
			continue
		}
		if err := s.Set(ctx, key, doc); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}
