package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingden/loyalty-gateway/internal/api/dto"
	"github.com/wingden/loyalty-gateway/internal/serviceerrs"
)

func TestWebhookHandler_happyTest(t *testing.T) {
	mailer := &fakeMailer{id: "msg-9"}
	h := NewWebhookHandler(mailer, testFrom, testLogger())

	reqBody := `{
		"name": "Free Wings",
		"code": "WING-10",
		"points_amount": 100,
		"customer": {
			"email": "a@b.com",
			"first_name": "Ada",
			"last_name": "L",
			"points_tally": 400
		}
	}`
	req := httptest.NewRequest(http.MethodPost,
		"/notify-point-redemption", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	h.NotifyRedemption(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body dto.WebhookResponse
	decodeBody(t, rr, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "msg-9", body.Data.MessageID)
	assert.Equal(t, "resend", body.Data.Provider)
	assert.Equal(t, "a@b.com", body.Data.Email)
	assert.Equal(t, 100, body.Data.PointsRedeemed)
	assert.Equal(t, 400, body.Data.PointsRemaining)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@b.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].HTML, "Ada L")
	assert.Contains(t, mailer.sent[0].HTML, "WING-10")
}

func TestWebhookHandler_validation(t *testing.T) {
	tests := []struct {
		name    string
		reqBody string
	}{
		{"broken JSON", `{"customer":`},
		{"missing customer", `{"points_amount":100}`},
		{
			"missing points amount",
			`{"customer":{"email":"a@b.com","points_tally":400}}`,
		},
		{
			"missing points tally",
			`{"points_amount":100,"customer":{"email":"a@b.com"}}`,
		},
		{
			"zero points amount",
			`{"points_amount":0,"customer":{"email":"a@b.com","points_tally":400}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{id: "msg-9"}
			h := NewWebhookHandler(mailer, testFrom, testLogger())

			req := httptest.NewRequest(http.MethodPost,
				"/notify-point-redemption", strings.NewReader(tt.reqBody))
			rr := httptest.NewRecorder()
			h.NotifyRedemption(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, mailer.sent)
		})
	}
}

func TestWebhookHandler_zeroTallyIsValid(t *testing.T) {
	mailer := &fakeMailer{id: "msg-9"}
	h := NewWebhookHandler(mailer, testFrom, testLogger())

	// The customer spent their last point.
	reqBody := `{
		"name": "Free Wings",
		"points_amount": 100,
		"customer": {"email": "a@b.com", "points_tally": 0}
	}`
	req := httptest.NewRequest(http.MethodPost,
		"/notify-point-redemption", strings.NewReader(reqBody))
	rr := httptest.NewRecorder()
	h.NotifyRedemption(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mailer.sent, 1)
}

func TestWebhookHandler_sendFailures(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantError string
	}{
		{
			"missing key",
			&serviceerrs.NotConfiguredError{Key: "RESEND_API_KEY"},
			"email service not configured",
		},
		{
			"provider rejection",
			&serviceerrs.EmailDeliveryError{Status: 403, Body: "domain not verified"},
			"email API error 403",
		},
		{
			"transport failure",
			errors.New("connection refused"),
			"connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{err: tt.err}
			h := NewWebhookHandler(mailer, testFrom, testLogger())

			reqBody := `{
				"name": "Free Wings",
				"points_amount": 100,
				"customer": {"email": "a@b.com", "points_tally": 400}
			}`
			req := httptest.NewRequest(http.MethodPost,
				"/notify-point-redemption", strings.NewReader(reqBody))
			rr := httptest.NewRecorder()
			h.NotifyRedemption(rr, req)

			assert.Equal(t, http.StatusInternalServerError, rr.Code)

			var body dto.ErrorResponse
			decodeBody(t, rr, &body)
			assert.Contains(t, body.Error, tt.wantError)
		})
	}
}
