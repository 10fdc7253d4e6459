package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingden/loyalty-gateway/internal/api/dto"
	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
)

const testFrom = "Wing Den <onboarding@resend.dev>"

func TestCheckoutHandler_happyTest(t *testing.T) {
	var gotEvent rivo.PointsEvent
	loyalty := &fakeLoyalty{
		createPoints: func(_ context.Context, event rivo.PointsEvent) (rivo.PointsEventResponse, error) {
			gotEvent = event
			var resp rivo.PointsEventResponse
			err := json.Unmarshal(
				[]byte(`{"data":{"attributes":{"customer":{"points_tally":550}}}}`),
				&resp)
			return resp, err
		},
	}
	mailer := &fakeMailer{id: "msg-1"}
	h := NewCheckoutHandler(loyalty, mailer, testFrom, testLogger())

	reqBody := `{
		"customerEmail": "a@b.com",
		"items": [
			{"name": "6 Wings", "quantity": 2, "price": "8.99"},
			{"name": "Fries", "quantity": 1, "price": "3.50"},
			{"name": "Soda", "quantity": 3, "price": "2.00"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost,
		"/checkout", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	h.Checkout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	// 6 items at 50 points each.
	assert.Equal(t, "a@b.com", gotEvent.CustomerIdentifier)
	assert.Equal(t, 300, gotEvent.PointsAmount)
	assert.Equal(t, "manual", gotEvent.Source)
	assert.Equal(t, "POS Purchase", gotEvent.CustomActionName)

	var body dto.CheckoutResponse
	decodeBody(t, rr, &body)
	assert.True(t, body.Success)
	assert.Equal(t, 6, body.Order.TotalItems)
	assert.Equal(t, "27.48", body.Order.TotalPrice)
	assert.Equal(t, 300, body.Order.PointsEarned)
	assert.True(t, body.Order.PointsAdded)
	require.NotNil(t, body.Order.NewPointsBalance)
	assert.Equal(t, 550, *body.Order.NewPointsBalance)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, testFrom, mailer.sent[0].From)
	assert.Equal(t, "a@b.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].HTML, "+300 points")
}

func TestCheckoutHandler_serverRecomputesPoints(t *testing.T) {
	var gotEvent rivo.PointsEvent
	loyalty := &fakeLoyalty{
		createPoints: func(_ context.Context, event rivo.PointsEvent) (rivo.PointsEventResponse, error) {
			gotEvent = event
			return rivo.PointsEventResponse{}, nil
		},
	}
	h := NewCheckoutHandler(loyalty, &fakeMailer{}, testFrom, testLogger())

	// The client claims a million points; the item count says 50.
	reqBody := `{
		"customerEmail": "a@b.com",
		"pointsEarned": 1000000,
		"items": [{"name": "6 Wings", "quantity": 1, "price": "8.99"}]
	}`
	req := httptest.NewRequest(http.MethodPost,
		"/checkout", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	h.Checkout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 50, gotEvent.PointsAmount)
}

func TestCheckoutHandler_accrualFailureKeepsOrder(t *testing.T) {
	loyalty := &fakeLoyalty{
		createPoints: func(context.Context, rivo.PointsEvent) (rivo.PointsEventResponse, error) {
			return rivo.PointsEventResponse{}, errors.New("rivo is down")
		},
	}
	mailer := &fakeMailer{id: "msg-1"}
	h := NewCheckoutHandler(loyalty, mailer, testFrom, testLogger())

	reqBody := `{
		"customerEmail": "a@b.com",
		"items": [{"name": "6 Wings", "quantity": 1, "price": "8.99"}]
	}`
	req := httptest.NewRequest(http.MethodPost,
		"/checkout", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	h.Checkout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body dto.CheckoutResponse
	decodeBody(t, rr, &body)
	assert.True(t, body.Success)
	assert.False(t, body.Order.PointsAdded)
	assert.Nil(t, body.Order.NewPointsBalance)

	// No accrual, no confirmation email.
	assert.Empty(t, mailer.sent)
}

func TestCheckoutHandler_emailFailureKeepsOrder(t *testing.T) {
	loyalty := &fakeLoyalty{
		createPoints: func(context.Context, rivo.PointsEvent) (rivo.PointsEventResponse, error) {
			return rivo.PointsEventResponse{}, nil
		},
	}
	mailer := &fakeMailer{err: errors.New("resend is down")}
	h := NewCheckoutHandler(loyalty, mailer, testFrom, testLogger())

	reqBody := `{
		"customerEmail": "a@b.com",
		"items": [{"name": "6 Wings", "quantity": 1, "price": "8.99"}]
	}`
	req := httptest.NewRequest(http.MethodPost,
		"/checkout", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	h.Checkout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body dto.CheckoutResponse
	decodeBody(t, rr, &body)
	assert.True(t, body.Success)
	assert.True(t, body.Order.PointsAdded)
	require.Len(t, mailer.sent, 1)
}

func TestCheckoutHandler_validation(t *testing.T) {
	tests := []struct {
		name      string
		reqBody   string
		wantError string
	}{
		{"broken JSON", `{"items":`, "invalid request format"},
		{"empty cart", `{"customerEmail":"a@b.com","items":[]}`, "cart is empty"},
		{
			"missing email",
			`{"items":[{"name":"6 Wings","quantity":1,"price":"8.99"}]}`,
			"customer email is required",
		},
		{
			"negative quantity",
			`{"customerEmail":"a@b.com","items":[{"name":"6 Wings","quantity":-2,"price":"8.99"}]}`,
			"item quantity must be positive",
		},
		{
			"zero quantity",
			`{"customerEmail":"a@b.com","items":[{"name":"6 Wings","quantity":0,"price":"8.99"}]}`,
			"item quantity must be positive",
		},
		{
			"negative price",
			`{"customerEmail":"a@b.com","items":[{"name":"6 Wings","quantity":1,"price":"-8.99"}]}`,
			"item price cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCheckoutHandler(&fakeLoyalty{}, &fakeMailer{}, testFrom, testLogger())

			req := httptest.NewRequest(http.MethodPost,
				"/checkout", strings.NewReader(tt.reqBody))
			rr := httptest.NewRecorder()
			h.Checkout(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var body dto.ErrorResponse
			decodeBody(t, rr, &body)
			assert.Contains(t, body.Error, tt.wantError)
		})
	}
}
