package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travel-market-backend/internal/dto"
)

// APIClient implements Directory and HistoryFetcher against the storefront
// REST server.
type APIClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *APIClient) OnDutyAgent(ctx context.Context) (string, error) {
	var resp dto.AgentResponse
	if err := c.getJSON(ctx, dto.SupportAgentPath(dto.PublicAPIPrefix), &resp); err != nil {
		return "", err
	}
	if resp.AgentID == "" {
		return "", fmt.Errorf("no agent available")
	}
	return resp.AgentID, nil
}

func (c *APIClient) History(ctx context.Context, userID string) ([]Message, error) {
	var resp dto.HistoryResponse
	if err := c.getJSON(ctx, dto.SupportHistoryPrefix(dto.PublicAPIPrefix)+url.PathEscape(userID), &resp); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(resp.Messages))
	for _, payload := range resp.Messages {
		messages = append(messages, Message{
			From:          payload.From,
			To:            payload.To,
			Content:       payload.Content,
			CreatedAt:     payload.CreatedAt,
			SenderName:    payload.SenderName,
			SenderEmail:   payload.SenderEmail,
			CorrelationID: payload.CorrelationID,
		})
	}
	return messages, nil
}

func (c *APIClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: status %d", path, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
