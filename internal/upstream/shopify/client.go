// Package shopify is a minimal client for the Shopify admin GraphQL API.
// The gateway only ever issues one fixed mutation (draft-order creation for
// the batch import), so the client stays deliberately small.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/serviceerrs"
)

const providerName = "Shopify"

const apiVersion = "2024-10"

const draftOrderCreateMutation = `
mutation draftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder { id }
  }
}`

type Client struct {
	httpClient  http.Client
	endpoint    string
	accessToken string
}

func New(store, accessToken string) *Client {
	return &Client{
		httpClient: http.Client{Timeout: model.DefaultTimeout},
		endpoint: fmt.Sprintf(
			"https://%s/admin/api/%s/graphql.json", store, apiVersion),
		accessToken: accessToken,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage   `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

// Execute posts a GraphQL document. Any errors array in an otherwise-OK
// response is fatal: the caller gets no partial data back.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode the query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create the request: %w", err)
	}
	req.Header.Set(model.HeaderContentType, model.ContentTypeJSON)
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Shopify: %w", err)
	}
	defer resp.Body.Close()

	var body graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("request decoding error: %w", err)
	}

	if len(body.Errors) > 0 {
		encoded, _ := json.Marshal(body.Errors)
		return nil, &serviceerrs.UpstreamRequestError{
			Provider: providerName,
			Status:   resp.StatusCode,
			Body:     string(encoded),
		}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &serviceerrs.UpstreamRequestError{
			Provider: providerName,
			Status:   resp.StatusCode,
			Body:     string(body.Data),
		}
	}

	return body.Data, nil
}

// DraftOrderInput mirrors the subset of Shopify's DraftOrderInput the
// import path fills in.
type DraftOrderInput struct {
	Email          string          `json:"email"`
	LineItems      []LineItemInput `json:"lineItems"`
	BillingAddress AddressInput    `json:"billingAddress"`
}

type LineItemInput struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type AddressInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateDraftOrder runs the fixed draftOrderCreate mutation and returns the
// created draft-order id.
func (c *Client) CreateDraftOrder(ctx context.Context, input DraftOrderInput) (string, error) {
	raw, err := c.Execute(ctx, draftOrderCreateMutation, map[string]any{"input": input})
	if err != nil {
		return "", fmt.Errorf("create draft order: %w", err)
	}

	var data struct {
		DraftOrderCreate struct {
			DraftOrder struct {
				ID string `json:"id"`
			} `json:"draftOrder"`
		} `json:"draftOrderCreate"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("draft order decoding error: %w", err)
	}
	return data.DraftOrderCreate.DraftOrder.ID, nil
}
