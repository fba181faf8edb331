// Package copilot is a thin client for the external natural-language query
// service. The dashboard only forwards a free-text question plus prior
// conversation turns and renders whatever text comes back; the query engine
// itself lives in a separate deployment.
package copilot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "shipment-dashboard/internal/errors"
)

// Turn is one prior exchange in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryRequest carries a free-text query and optional conversation context.
type QueryRequest struct {
	Query          string `json:"query"`
	ConversationID string `json:"conversation_id"`
	History        []Turn `json:"history,omitempty"`
}

// QueryResponse is the service's answer: display text plus an optional
// structured result set the UI may render as a table.
type QueryResponse struct {
	Answer         string          `json:"answer"`
	ConversationID string          `json:"conversation_id,omitempty"`
	Data           json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Enabled reports whether a copilot endpoint is configured at all.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Ask sends one query. An empty conversation ID gets a fresh one so the
// upstream service can thread follow-up questions. Transport failures and
// non-2xx responses map to a service-unavailable error, the failure class
// the UI turns into a retry affordance.
func (c *Client) Ask(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	if !c.Enabled() {
		return nil, apperrors.ServiceUnavailable("copilot service is not configured")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, apperrors.Validation("query must not be empty")
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.InternalWrap(err, "encode copilot request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.InternalWrap(err, "create copilot request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.ServiceUnavailableWrap(err, "copilot service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("copilot request rejected",
			"status", resp.StatusCode,
			"body", strings.TrimSpace(string(b)),
		)
		return nil, apperrors.ServiceUnavailable(fmt.Sprintf("copilot service returned HTTP %d", resp.StatusCode))
	}

	var queryResp QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&queryResp); err != nil {
		return nil, apperrors.ServiceUnavailableWrap(err, "copilot response malformed")
	}
	if queryResp.ConversationID == "" {
		queryResp.ConversationID = req.ConversationID
	}
	return &queryResp, nil
}
