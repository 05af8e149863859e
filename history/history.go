// Package history keeps a short per-blog log of past analysis results in
// Redis so callers can see grade movement over time. The store is
// optional; a nil *Store is a valid, disabled store.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/use-agent/blogdex/models"
)

const keyPrefix = "history:"

// Store is a Redis-backed, newest-first, capped analysis-history log.
type Store struct {
	client *redis.Client
	max    int64
}

// New creates a Store over an existing Redis client, capping each blog's
// log at maxEntries.
func New(client *redis.Client, maxEntries int) *Store {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Store{client: client, max: int64(maxEntries)}
}

// Enabled reports whether a backing store is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Append records one analysis result at the head of the blog's log and
// trims the log to the configured cap.
func (s *Store) Append(ctx context.Context, entry models.HistoryEntry) error {
	if !s.Enabled() {
		return nil
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("history marshal: %w", err)
	}

	key := keyPrefix + entry.BlogID
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, s.max-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("history append: %w", err)
	}
	return nil
}

// List returns the blog's history, newest first. A disabled store returns
// an empty list.
func (s *Store) List(ctx context.Context, blogID string) ([]models.HistoryEntry, error) {
	if !s.Enabled() {
		return []models.HistoryEntry{}, nil
	}

	raw, err := s.client.LRange(ctx, keyPrefix+blogID, 0, s.max-1).Result()
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}

	entries := make([]models.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// Skip records written by an incompatible version.
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
