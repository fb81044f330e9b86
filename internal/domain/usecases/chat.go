// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/chart"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/fallback"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/ports"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/signal"
)

// Validation failures are the only errors a caller of Submit sees; every
// other failure degrades to a reduced-richness reply.
var (
	ErrEmptyMessage    = errors.New("message text is required")
	ErrUnauthenticated = errors.New("user identity is required")
)

// ChatUseCase is the conversation orchestrator. It sequences the risk
// check, interpretation (with local fallback), chart synthesis, resource
// matching, and interaction recording for each incoming turn.
type ChatUseCase struct {
	interpreter ports.Interpreter
	matcher     *ResourceMatcher
	store       ports.InteractionStore
	charts      *chart.Synthesizer
	logger      *zap.Logger
	timeout     time.Duration
	newID       func() string
	now         func() time.Time
}

// NewChatUseCase creates a ChatUseCase with injected dependencies.
func NewChatUseCase(
	interpreter ports.Interpreter,
	catalog ports.ResourceCatalog,
	store ports.InteractionStore,
	charts *chart.Synthesizer,
	logger *zap.Logger,
	timeout time.Duration,
) *ChatUseCase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if charts == nil {
		charts = chart.NewSynthesizer(nil)
	}
	return &ChatUseCase{
		interpreter: interpreter,
		matcher:     NewResourceMatcher(catalog, maxResources, logger),
		store:       store,
		charts:      charts,
		logger:      logger,
		timeout:     timeout,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Submit processes one user message end to end and assembles the outward
// response. The external inference service is never a hard dependency:
// on delegation failure the local fallback responder supplies the reply.
func (uc *ChatUseCase) Submit(ctx context.Context, userID, text, conversationID string) (*entities.ChatResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	turn := entities.ConversationTurn{
		UserID:         userID,
		ConversationID: conversationID,
		Text:           text,
	}

	// Risk check runs on raw text before interpretation, independent of
	// which interpretation path ends up producing the reply.
	riskDetected, riskPhrases := signal.DetectRisk(text)
	if riskDetected {
		uc.logger.Warn("crisis language detected",
			zap.String("user_id", userID),
			zap.Strings("phrases", riskPhrases))
	}

	res := uc.interpret(ctx, turn)
	if err := ctx.Err(); err != nil {
		// Caller went away mid-pipeline; write nothing.
		return nil, err
	}

	// The lexical risk flag ORs with whatever the inference service said.
	res.Risk = res.Risk || riskDetected

	healthChart := uc.charts.Synthesize(text, res)
	resources := uc.matcher.Match(ctx, res)

	turn.ConversationID = uc.record(ctx, turn, res, healthChart)

	return &entities.ChatResponse{
		Reply:          res.Reply,
		ConversationID: turn.ConversationID,
		Sentiment:      res.Sentiment,
		Risk:           res.Risk,
		Resources:      resources,
		Chart:          healthChart,
	}, nil
}

// interpret tries the inference delegate under a bounded timeout and
// falls back to the local responder on any delegation failure.
func (uc *ChatUseCase) interpret(ctx context.Context, turn entities.ConversationTurn) *entities.InterpretationResult {
	ictx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res, err := uc.interpreter.Interpret(ictx, turn)
	if err == nil && res != nil {
		return res
	}

	uc.logger.Warn("inference delegation failed, using fallback responder",
		zap.String("user_id", turn.UserID),
		zap.Error(err))
	return fallback.Respond(turn.Text)
}

// record persists the finalized turn, allocating a conversation id when
// the turn did not carry one. Persistence failure is logged, not fatal:
// the user still gets their reply, but losing interaction history is a
// correctness concern for auditing, so it is always observable.
func (uc *ChatUseCase) record(ctx context.Context, turn entities.ConversationTurn, res *entities.InterpretationResult, healthChart *entities.HealthChart) string {
	conversationID := turn.ConversationID
	if conversationID == "" {
		conversationID = uc.newID()
	}

	// Sequence position within the conversation; only informational for
	// an append-only log ordered by creation time.
	if count, err := uc.store.CountByConversation(ctx, conversationID); err == nil {
		turn.Sequence = count + 1
	}

	rec := &entities.InteractionRecord{
		ID:             uc.newID(),
		ConversationID: conversationID,
		UserID:         turn.UserID,
		Message:        turn.Text,
		Reply:          res.Reply,
		Sentiment:      res.Sentiment,
		Risk:           res.Risk,
		Emotions:       res.Emotions,
		Keywords:       res.Keywords,
		Chart:          healthChart,
		CreatedAt:      uc.now().UTC(),
	}

	if err := uc.store.Append(ctx, rec); err != nil {
		uc.logger.Error("failed to persist interaction record",
			zap.String("conversation_id", conversationID),
			zap.String("user_id", turn.UserID),
			zap.Error(err))
		return conversationID
	}
	uc.logger.Debug("interaction recorded",
		zap.String("conversation_id", conversationID),
		zap.Int("sequence", turn.Sequence))
	return conversationID
}
