// Package inference provides the HTTP adapter for the external
// interpretation service.
// Clean Architecture: Adapter implementing ports.Interpreter.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/ports"
)

// Client implements ports.Interpreter against the inference service's
// /api/process endpoint. It performs a single attempt per call; retries
// and fallback belong to the orchestrator.
type Client struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewClient creates an inference client. The timeout bounds the whole
// request including body read; callers may tighten it further via ctx.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// processRequest is the inference service request payload.
type processRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
}

// processResponse is the inference service response payload.
type processResponse struct {
	Response  string             `json:"response"`
	Sentiment string             `json:"sentiment"`
	IsCrisis  bool               `json:"is_crisis"`
	Resources []processResource  `json:"resources"`
	Keywords  []string           `json:"keywords"`
	Emotions  map[string]float64 `json:"emotions"`
}

type processResource struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

// Interpret sends the turn to the inference service and normalizes the
// payload into an InterpretationResult. Every failure mode - transport
// error, timeout, non-2xx status, malformed body, empty reply - is
// reported as a *ports.DelegationError.
func (c *Client) Interpret(ctx context.Context, turn entities.ConversationTurn) (*entities.InterpretationResult, error) {
	reqBody := processRequest{
		Message:   turn.Text,
		UserID:    turn.UserID,
		Timestamp: c.now().UTC().Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ports.DelegationError{Cause: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/process", bytes.NewReader(jsonData))
	if err != nil {
		return nil, &ports.DelegationError{Cause: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ports.DelegationError{Cause: fmt.Errorf("calling inference service: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ports.DelegationError{Cause: fmt.Errorf("inference service returned status %d", resp.StatusCode)}
	}

	var pr processResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, &ports.DelegationError{Cause: fmt.Errorf("decoding response: %w", err)}
	}
	if pr.Response == "" {
		return nil, &ports.DelegationError{Cause: fmt.Errorf("inference service returned empty reply")}
	}

	return normalize(&pr), nil
}

// normalize maps the remote payload to the canonical shape. Missing
// optional fields default to empty, never nil maps, and keywords are
// deduplicated in insertion order since the remote service makes no
// uniqueness guarantee.
func normalize(pr *processResponse) *entities.InterpretationResult {
	emotions := pr.Emotions
	if emotions == nil {
		emotions = map[string]float64{}
	}
	keywords := make([]string, 0, len(pr.Keywords))
	seen := make(map[string]struct{}, len(pr.Keywords))
	for _, kw := range pr.Keywords {
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	var suggested []entities.Resource
	for _, r := range pr.Resources {
		suggested = append(suggested, entities.Resource{
			Title:       r.Title,
			Description: r.Description,
			Type:        r.Type,
			Category:    r.Category,
			URL:         r.URL,
			Tags:        r.Tags,
		})
	}

	return &entities.InterpretationResult{
		Source:             entities.SourceInference,
		Reply:              pr.Response,
		Sentiment:          entities.ParseSentiment(pr.Sentiment),
		Risk:               pr.IsCrisis,
		Keywords:           keywords,
		Emotions:           emotions,
		SuggestedResources: suggested,
	}
}
