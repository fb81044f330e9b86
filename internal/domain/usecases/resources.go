// Package usecases - resources.go matches support resources to a turn.
package usecases

import (
	"context"

	"go.uber.org/zap"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/ports"
)

// maxResources caps how many resources accompany a reply.
const maxResources = 3

// ResourceMatcher selects support resources for an interpreted turn.
// Inference-suggested resources take precedence over a catalog query,
// and catalog failures degrade to an empty list rather than failing
// the pipeline.
type ResourceMatcher struct {
	catalog ports.ResourceCatalog
	limit   int
	logger  *zap.Logger
}

// NewResourceMatcher creates a matcher capped at limit resources.
func NewResourceMatcher(catalog ports.ResourceCatalog, limit int, logger *zap.Logger) *ResourceMatcher {
	if limit <= 0 {
		limit = maxResources
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceMatcher{catalog: catalog, limit: limit, logger: logger}
}

// Match returns up to the configured number of resources for res.
func (m *ResourceMatcher) Match(ctx context.Context, res *entities.InterpretationResult) []entities.Resource {
	if len(res.SuggestedResources) > 0 {
		suggested := res.SuggestedResources
		if len(suggested) > m.limit {
			suggested = suggested[:m.limit]
		}
		return suggested
	}

	matched, err := m.catalog.Match(ctx, res.Keywords, res.Sentiment, m.limit)
	if err != nil {
		m.logger.Warn("resource catalog query failed, returning no resources",
			zap.Error(err))
		return nil
	}
	return matched
}
