// Package logstore provides interaction-log store adapters.
// The in-memory store backs tests and local development; the SQLite
// adapter is the durable implementation.
package logstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
)

// MemoryStore is an in-memory, append-only interaction store.
type MemoryStore struct {
	mu      sync.RWMutex
	records []entities.InteractionRecord
	ids     map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]struct{})}
}

// Append writes one record. Duplicate ids are rejected, matching the
// SQLite adapter's primary-key behavior.
func (s *MemoryStore) Append(ctx context.Context, rec *entities.InteractionRecord) error {
	if rec.ID == "" || rec.ConversationID == "" || rec.UserID == "" {
		return fmt.Errorf("interaction record missing identifiers")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ids[rec.ID]; exists {
		return fmt.Errorf("duplicate interaction id %s", rec.ID)
	}
	s.ids[rec.ID] = struct{}{}
	s.records = append(s.records, *rec)
	return nil
}

// RecentByUser returns the newest records for a user, newest first.
func (s *MemoryStore) RecentByUser(ctx context.Context, userID string, limit int) ([]entities.InteractionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.InteractionRecord
	for _, rec := range s.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ByConversation returns a conversation's records ordered by creation time.
func (s *MemoryStore) ByConversation(ctx context.Context, userID, conversationID string) ([]entities.InteractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.InteractionRecord
	for _, rec := range s.records {
		if rec.UserID == userID && rec.ConversationID == conversationID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ChartsByUser returns records carrying a chart, newest first.
func (s *MemoryStore) ChartsByUser(ctx context.Context, userID string, limit int) ([]entities.InteractionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.InteractionRecord
	for _, rec := range s.records {
		if rec.UserID == userID && rec.Chart != nil {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountByConversation reports how many records a conversation holds.
func (s *MemoryStore) CountByConversation(ctx context.Context, conversationID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rec := range s.records {
		if rec.ConversationID == conversationID {
			count++
		}
	}
	return count, nil
}

// DeleteByUser removes all of a user's records.
func (s *MemoryStore) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []entities.InteractionRecord
	var deleted int64
	for _, rec := range s.records {
		if rec.UserID == userID {
			delete(s.ids, rec.ID)
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return deleted, nil
}
