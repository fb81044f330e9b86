// Package usecases - history.go reads back the interaction log.
package usecases

import (
	"context"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/ports"
)

// HistoryUseCase serves read and delete operations over the interaction
// log: recent messages, a conversation transcript, chart history, and
// bulk removal on account deletion.
type HistoryUseCase struct {
	store ports.InteractionStore
}

// NewHistoryUseCase creates a HistoryUseCase.
func NewHistoryUseCase(store ports.InteractionStore) *HistoryUseCase {
	return &HistoryUseCase{store: store}
}

// Recent returns a user's newest interactions, newest first.
func (uc *HistoryUseCase) Recent(ctx context.Context, userID string, limit int) ([]entities.InteractionRecord, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return uc.store.RecentByUser(ctx, userID, limit)
}

// Conversation returns one conversation's transcript in creation order.
func (uc *HistoryUseCase) Conversation(ctx context.Context, userID, conversationID string) ([]entities.InteractionRecord, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return uc.store.ByConversation(ctx, userID, conversationID)
}

// Charts returns the user's interactions that carry a health chart.
func (uc *HistoryUseCase) Charts(ctx context.Context, userID string, limit int) ([]entities.InteractionRecord, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return uc.store.ChartsByUser(ctx, userID, limit)
}

// DeleteUserData removes every record belonging to userID and reports
// how many were deleted. Used when an account is removed.
func (uc *HistoryUseCase) DeleteUserData(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrUnauthenticated
	}
	return uc.store.DeleteByUser(ctx, userID)
}
