// Package rivo is the typed client for the Rivo loyalty-points API.
// Adapters here issue exactly one HTTP call each and hand back the parsed
// body unchanged; reshaping lives in the normalizers next door.
package rivo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/serviceerrs"
	"github.com/wingden/loyalty-gateway/internal/utils/logger"
)

const providerName = "Rivo"

type Client struct {
	httpClient http.Client
	baseURL    string
	apiKey     string
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: http.Client{Timeout: model.DefaultTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
	}
}

func (c *Client) ListRewards(ctx context.Context) (RewardsResponse, error) {
	var resp RewardsResponse
	if err := c.doJSON(ctx, http.MethodGet, "rewards", nil, &resp); err != nil {
		return RewardsResponse{}, fmt.Errorf("list rewards: %w", err)
	}
	return resp, nil
}

func (c *Client) ListCustomers(ctx context.Context) (CustomersResponse, error) {
	var resp CustomersResponse
	if err := c.doJSON(ctx, http.MethodGet, "customers", nil, &resp); err != nil {
		return CustomersResponse{}, fmt.Errorf("list customers: %w", err)
	}
	return resp, nil
}

func (c *Client) GetCustomer(ctx context.Context, email string) (CustomerResponse, error) {
	var resp CustomerResponse
	path := "customers/" + url.PathEscape(email)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return CustomerResponse{}, fmt.Errorf("get customer: %w", err)
	}
	return resp, nil
}

func (c *Client) CreatePointsEvent(ctx context.Context, event PointsEvent) (PointsEventResponse, error) {
	var resp PointsEventResponse
	if err := c.doJSON(ctx, http.MethodPost, "points_events", event, &resp); err != nil {
		return PointsEventResponse{}, fmt.Errorf("create points event: %w", err)
	}
	return resp, nil
}

// CreateRedemption posts to the redemption endpoint, which is the one Rivo
// call that requires form encoding. A successful non-JSON body is folded
// into {message: <text>} instead of failing, matching the provider's
// occasional plain-text answers on this endpoint.
func (c *Client) CreateRedemption(ctx context.Context, form RedemptionForm) (RedemptionResponse, error) {
	body := form.Values().Encode()
	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost, c.baseURL+"/points_redemptions", strings.NewReader(body))
	if err != nil {
		return RedemptionResponse{}, fmt.Errorf("failed to create the request: %w", err)
	}
	req.Header.Set(model.HeaderContentType, "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", c.apiKey)

	logger.FromContext(ctx).LogAttrs(ctx,
		slog.LevelDebug, "calling Rivo",
		slog.String("method", http.MethodPost),
		slog.String("path", "points_redemptions"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RedemptionResponse{}, fmt.Errorf("failed to send request to Rivo: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return RedemptionResponse{}, fmt.Errorf("failed to read the body: %w", err)
	}

	var data RedemptionResponse
	if isJSON(resp.Header.Get(model.HeaderContentType)) {
		if err := json.Unmarshal(raw, &data); err != nil {
			return RedemptionResponse{}, fmt.Errorf("request decoding error: %w", err)
		}
	} else {
		data = RedemptionResponse{Message: string(raw)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return RedemptionResponse{}, &serviceerrs.UpstreamRequestError{
			Provider: providerName,
			Status:   resp.StatusCode,
			Body:     data.errorMessage(resp.StatusCode),
		}
	}
	return data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader = http.NoBody
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode the payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, body)
	if err != nil {
		return fmt.Errorf("failed to create the request: %w", err)
	}
	logger.FromContext(ctx).LogAttrs(ctx,
		slog.LevelDebug, "calling Rivo",
		slog.String("method", method),
		slog.String("path", path))
	req.Header.Set(model.HeaderContentType, model.ContentTypeJSON)
	req.Header.Set("Accept", model.ContentTypeJSON)
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Rivo: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read the body: %w", err)
	}

	// HTML error pages and the like must never reach the decoder.
	if !isJSON(resp.Header.Get(model.HeaderContentType)) {
		return &serviceerrs.UpstreamProtocolError{
			Provider: providerName,
			Status:   resp.StatusCode,
			Snippet:  serviceerrs.Snippet(string(raw)),
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &serviceerrs.UpstreamRequestError{
			Provider: providerName,
			Status:   resp.StatusCode,
			Body:     string(raw),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("request decoding error: %w", err)
	}
	return nil
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, model.ContentTypeJSON)
}

// RedemptionForm carries the form-encoded fields of a redemption call.
// Points and Credits are forwarded only when positive, exactly as received
// from the POS form.
type RedemptionForm struct {
	Email    string
	RewardID string
	Points   int
	Credits  int
}

func (f RedemptionForm) Values() url.Values {
	v := url.Values{}
	v.Set("customer_identifier", f.Email)
	v.Set("reward_id", f.RewardID)
	if f.Points > 0 {
		v.Set("points_amount", strconv.Itoa(f.Points))
	}
	if f.Credits > 0 {
		v.Set("credits_amount", strconv.Itoa(f.Credits))
	}
	return v
}
