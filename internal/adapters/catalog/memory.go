package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
)

// MemoryCatalog is an in-memory resource catalog for tests and local
// development.
type MemoryCatalog struct {
	mu        sync.RWMutex
	resources []entities.Resource
}

// NewMemoryCatalog creates an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{}
}

// Match applies the shared match condition over the in-memory set.
func (c *MemoryCatalog) Match(ctx context.Context, keywords []string, sentiment entities.Sentiment, limit int) ([]entities.Resource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FilterResources(c.resources, keywords, sentiment, limit), nil
}

// SeedIfEmpty inserts resources when the catalog holds none.
func (c *MemoryCatalog) SeedIfEmpty(ctx context.Context, resources []entities.Resource) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.resources) > 0 {
		return nil
	}
	c.resources = withIDs(resources)
	return nil
}

// ReplaceAll swaps the full catalog contents.
func (c *MemoryCatalog) ReplaceAll(ctx context.Context, resources []entities.Resource) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = withIDs(resources)
	return nil
}

func withIDs(resources []entities.Resource) []entities.Resource {
	out := make([]entities.Resource, len(resources))
	copy(out, resources)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}
