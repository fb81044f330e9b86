// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"
	"errors"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
)

// Interpreter delegates interpretation of a turn to the external inference service.
// Implementations must not retry; any failure is reported as a *DelegationError
// and the retry/fallback policy stays with the orchestrator.
type Interpreter interface {
	// Interpret sends the turn to the inference service and normalizes its payload.
	Interpret(ctx context.Context, turn entities.ConversationTurn) (*entities.InterpretationResult, error)
}

// ResourceCatalog queries the curated support-resource store.
type ResourceCatalog interface {
	// Match returns up to limit resources where any keyword appears in the
	// resource's tag set or the category equals the sentiment label.
	Match(ctx context.Context, keywords []string, sentiment entities.Sentiment, limit int) ([]entities.Resource, error)

	// SeedIfEmpty inserts the given resources when the catalog holds none.
	SeedIfEmpty(ctx context.Context, resources []entities.Resource) error

	// ReplaceAll swaps the full catalog contents atomically.
	ReplaceAll(ctx context.Context, resources []entities.Resource) error
}

// InteractionStore persists the append-only interaction log.
type InteractionStore interface {
	// Append writes one finalized record. Records are immutable once written.
	Append(ctx context.Context, rec *entities.InteractionRecord) error

	// RecentByUser returns the newest records for a user, newest first.
	RecentByUser(ctx context.Context, userID string, limit int) ([]entities.InteractionRecord, error)

	// ByConversation returns a conversation's records ordered by creation time.
	ByConversation(ctx context.Context, userID, conversationID string) ([]entities.InteractionRecord, error)

	// ChartsByUser returns records carrying a chart, newest first.
	ChartsByUser(ctx context.Context, userID string, limit int) ([]entities.InteractionRecord, error)

	// CountByConversation reports how many records a conversation holds.
	CountByConversation(ctx context.Context, conversationID string) (int, error)

	// DeleteByUser removes all of a user's records (account removal).
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// DelegationError reports that the external inference service could not
// produce a usable result (timeout, connection error, bad status, bad payload).
type DelegationError struct {
	Cause error
}

func (e *DelegationError) Error() string {
	if e.Cause == nil {
		return "inference delegation failed"
	}
	return "inference delegation failed: " + e.Cause.Error()
}

func (e *DelegationError) Unwrap() error { return e.Cause }

// IsDelegationError reports whether err is (or wraps) a DelegationError.
func IsDelegationError(err error) bool {
	var de *DelegationError
	return errors.As(err, &de)
}

// ErrCatalogUnavailable is returned by catalog adapters when the underlying
// store cannot be queried. The orchestrator degrades to an empty resource list.
var ErrCatalogUnavailable = errors.New("resource catalog unavailable")
