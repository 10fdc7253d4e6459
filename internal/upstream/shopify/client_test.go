package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingden/loyalty-gateway/internal/serviceerrs"
)

func newTestClient(url string) *Client {
	c := New("wing-den.myshopify.com", "shpat_test")
	c.endpoint = url
	return c
}

func TestClient_CreateDraftOrder_happyTest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))

			var body struct {
				Query     string `json:"query"`
				Variables struct {
					Input DraftOrderInput `json:"input"`
				} `json:"variables"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Contains(t, body.Query, "draftOrderCreate")
			assert.Equal(t, "a@b.com", body.Variables.Input.Email)
			require.Len(t, body.Variables.Input.LineItems, 1)
			assert.Equal(t, "6 Wings", body.Variables.Input.LineItems[0].Title)
			assert.Equal(t, "8.99", body.Variables.Input.LineItems[0].Price)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"draftOrderCreate":
				{"draftOrder":{"id":"gid://shopify/DraftOrder/1"}}}}`))
		}))
	defer srv.Close()

	id, err := newTestClient(srv.URL).CreateDraftOrder(context.Background(),
		DraftOrderInput{
			Email: "a@b.com",
			LineItems: []LineItemInput{
				{Title: "6 Wings", Quantity: 1, Price: "8.99"},
			},
			BillingAddress: AddressInput{FirstName: "Ada", LastName: "L"},
		})
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/DraftOrder/1", id)
}

func TestClient_Execute_errorsArrayIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			// Shopify answers 200 even when the mutation failed.
			_, _ = w.Write([]byte(`{
				"data":{"draftOrderCreate":{"draftOrder":{"id":"gid://1"}}},
				"errors":[{"message":"access denied"}]
			}`))
		}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Execute(context.Background(),
		draftOrderCreateMutation, nil)
	require.Error(t, err)

	var reqErr *serviceerrs.UpstreamRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "Shopify", reqErr.Provider)
	assert.Contains(t, reqErr.Body, "access denied")
}

func TestClient_Execute_non2xxIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"data":null}`))
		}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Execute(context.Background(),
		draftOrderCreateMutation, nil)
	require.Error(t, err)

	var reqErr *serviceerrs.UpstreamRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
}
