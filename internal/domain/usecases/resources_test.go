package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/ports"
)

func TestResourceMatcher_QueriesCatalog(t *testing.T) {
	cat := &mockCatalog{resources: []entities.Resource{{Title: "A"}, {Title: "B"}}}
	m := NewResourceMatcher(cat, 3, nil)

	got := m.Match(context.Background(), &entities.InterpretationResult{
		Keywords:  []string{"stress"},
		Sentiment: entities.SentimentNegative,
	})
	require.Len(t, got, 2)
}

func TestResourceMatcher_SuggestedSkipsCatalog(t *testing.T) {
	cat := &mockCatalog{err: ports.ErrCatalogUnavailable}
	m := NewResourceMatcher(cat, 3, nil)

	got := m.Match(context.Background(), &entities.InterpretationResult{
		SuggestedResources: []entities.Resource{{Title: "Suggested"}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Suggested", got[0].Title)
}

func TestResourceMatcher_CapsSuggestedAtLimit(t *testing.T) {
	m := NewResourceMatcher(&mockCatalog{}, 3, nil)
	got := m.Match(context.Background(), &entities.InterpretationResult{
		SuggestedResources: []entities.Resource{
			{Title: "1"}, {Title: "2"}, {Title: "3"}, {Title: "4"}, {Title: "5"},
		},
	})
	assert.Len(t, got, 3)
}

func TestResourceMatcher_CatalogFailureReturnsEmpty(t *testing.T) {
	m := NewResourceMatcher(&mockCatalog{err: ports.ErrCatalogUnavailable}, 3, nil)
	got := m.Match(context.Background(), &entities.InterpretationResult{Keywords: []string{"x"}})
	assert.Empty(t, got)
}
