// Package resend sends transactional email through the Resend HTTP API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/serviceerrs"
)

const defaultEndpoint = "https://api.resend.com/emails"

type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type Client struct {
	httpClient http.Client
	endpoint   string
	apiKey     string
}

func New(apiKey string) *Client {
	return &Client{
		httpClient: http.Client{Timeout: model.DefaultTimeout},
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
	}
}

// Send delivers one message and returns the provider message id.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if c.apiKey == "" {
		return "", &serviceerrs.NotConfiguredError{Key: "RESEND_API_KEY"}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to encode the message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create the request: %w", err)
	}
	req.Header.Set(model.HeaderContentType, model.ContentTypeJSON)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Resend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read the body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &serviceerrs.EmailDeliveryError{
			Status: resp.StatusCode,
			Body:   string(raw),
		}
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("request decoding error: %w", err)
	}
	return body.ID, nil
}
