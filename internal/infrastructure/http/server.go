// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/usecases"
)

// Server exposes the conversational support pipeline over HTTP.
type Server struct {
	chat    *usecases.ChatUseCase
	history *usecases.HistoryUseCase
	logger  *zap.Logger
	addr    string
	guestID string
}

// NewServer creates an HTTP server. Unauthenticated chat requests are
// attributed to guestID; history endpoints require an identity.
func NewServer(
	chat *usecases.ChatUseCase,
	history *usecases.HistoryUseCase,
	logger *zap.Logger,
	addr string,
	guestID string,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if guestID == "" {
		guestID = "guest"
	}
	return &Server{
		chat:    chat,
		history: history,
		logger:  logger,
		addr:    addr,
		guestID: guestID,
	}
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/chat/message", s.handleMessage)
	mux.HandleFunc("/api/chat/recent", s.handleRecent)
	mux.HandleFunc("/api/chat/history/", s.handleConversation)
	mux.HandleFunc("/api/charts", s.handleCharts)
	mux.HandleFunc("/api/account/data", s.handleAccountData)

	return corsMiddleware(s.loggingMiddleware(mux))
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// userID extracts the authenticated user identity supplied by the
// upstream identity collaborator. The pipeline trusts it as given.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
