package serviceerrs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	short := "bad gateway"
	assert.Equal(t, short, Snippet(short))

	long := strings.Repeat("x", SnippetLimit+50)
	got := Snippet(long)
	assert.Len(t, got, SnippetLimit+len("..."))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestErrorMessages(t *testing.T) {
	reqErr := &UpstreamRequestError{Provider: "Rivo", Status: 502, Body: "boom"}
	assert.Equal(t, "Rivo API error: HTTP 502: boom", reqErr.Error())

	protoErr := &UpstreamProtocolError{Provider: "Rivo", Status: 502, Snippet: "<html>"}
	assert.Equal(t,
		"Rivo API returned non-JSON response (HTTP 502): <html>", protoErr.Error())

	deliveryErr := &EmailDeliveryError{Status: 403, Body: "denied"}
	assert.Equal(t, "email API error 403: denied", deliveryErr.Error())

	notConfigured := &NotConfiguredError{Key: "RESEND_API_KEY"}
	assert.Equal(t, "RESEND_API_KEY not configured", notConfigured.Error())
}
