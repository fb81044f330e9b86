package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/usecases"
)

// messageRequest is the chat submission payload.
type messageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

// messageResponse mirrors the pipeline's ChatResponse outward.
type messageResponse struct {
	Message        string                `json:"message"`
	ConversationID string                `json:"conversationId"`
	Sentiment      string                `json:"sentiment"`
	IsCrisis       bool                  `json:"isCrisis"`
	Resources      []entities.Resource   `json:"resources"`
	Chart          *entities.HealthChart `json:"chart,omitempty"`
}

type interactionResponse struct {
	ID             string                `json:"id"`
	ConversationID string                `json:"conversationId"`
	Message        string                `json:"message"`
	Response       string                `json:"response"`
	Sentiment      string                `json:"sentiment"`
	IsCrisis       bool                  `json:"isCrisis"`
	Keywords       []string              `json:"keywords"`
	Emotions       map[string]float64    `json:"emotions"`
	Chart          *entities.HealthChart `json:"chart,omitempty"`
	Timestamp      time.Time             `json:"timestamp"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// handleMessage processes one chat turn. Identity is optional here:
// anonymous visitors are attributed to the guest user.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	uid := userID(r)
	if uid == "" {
		uid = s.guestID
	}

	resp, err := s.chat.Submit(r.Context(), uid, req.Message, req.ConversationID)
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "Message is required")
		case errors.Is(err, usecases.ErrUnauthenticated):
			writeError(w, http.StatusUnauthorized, "Authentication required")
		default:
			// Only caller cancellation reaches here; everything else
			// degrades inside the pipeline.
			s.logger.Warn("chat turn aborted", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to process message")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message:        resp.Reply,
		ConversationID: resp.ConversationID,
		Sentiment:      string(resp.Sentiment),
		IsCrisis:       resp.Risk,
		Resources:      emptyIfNil(resp.Resources),
		Chart:          resp.Chart,
	})
}

// handleRecent returns the caller's newest interactions.
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	records, err := s.history.Recent(r.Context(), uid, queryLimit(r, 10))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch recent messages")
		return
	}
	writeJSON(w, http.StatusOK, toInteractionResponses(records))
}

// handleConversation returns one conversation's transcript.
func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	conversationID := strings.TrimPrefix(r.URL.Path, "/api/chat/history/")
	if conversationID == "" || strings.Contains(conversationID, "/") {
		writeError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	records, err := s.history.Conversation(r.Context(), uid, conversationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch conversation")
		return
	}
	writeJSON(w, http.StatusOK, toInteractionResponses(records))
}

// handleCharts returns interactions that carry a health chart.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	records, err := s.history.Charts(r.Context(), uid, queryLimit(r, 20))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch chart history")
		return
	}
	writeJSON(w, http.StatusOK, toInteractionResponses(records))
}

// handleAccountData deletes all interaction history for the caller.
func (s *Server) handleAccountData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	deleted, err := s.history.DeleteUserData(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete interaction history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toInteractionResponses(records []entities.InteractionRecord) []interactionResponse {
	out := make([]interactionResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, interactionResponse{
			ID:             rec.ID,
			ConversationID: rec.ConversationID,
			Message:        rec.Message,
			Response:       rec.Reply,
			Sentiment:      string(rec.Sentiment),
			IsCrisis:       rec.Risk,
			Keywords:       rec.Keywords,
			Emotions:       rec.Emotions,
			Chart:          rec.Chart,
			Timestamp:      rec.CreatedAt,
		})
	}
	return out
}

func queryLimit(r *http.Request, fallback int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return fallback
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func emptyIfNil(resources []entities.Resource) []entities.Resource {
	if resources == nil {
		return []entities.Resource{}
	}
	return resources
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}
