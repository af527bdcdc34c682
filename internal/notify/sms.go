package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Sender delivers a text message to a phone number. The risk engine
// hands it a fully formatted string and does not care how it travels.
type Sender interface {
	Send(ctx context.Context, phone, text string) error
}

// Gateway is a Sender backed by an HTTP SMS gateway.
type Gateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGateway creates a gateway client. An empty baseURL yields a
// disabled sender that logs instead of delivering, for local runs.
func NewGateway(baseURL, apiKey string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type smsRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// Send posts the message to the gateway.
func (g *Gateway) Send(ctx context.Context, phone, text string) error {
	if g.baseURL == "" {
		slog.Info("SMS gateway disabled, message not sent", "to", phone)
		return nil
	}

	body, err := json.Marshal(smsRequest{To: phone, Text: text})
	if err != nil {
		return fmt.Errorf("marshal SMS request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned %s", resp.Status)
	}
	return nil
}

// Ping checks that the gateway is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	if g.baseURL == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("SMS gateway health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway health check returned %s", resp.Status)
	}
	return nil
}
