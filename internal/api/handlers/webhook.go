package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/wingden/loyalty-gateway/internal/api/dto"
	"github.com/wingden/loyalty-gateway/internal/mail"
	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/serviceerrs"
)

// WebhookHandler receives the provider's redemption event and answers it
// with a confirmation email. Unlike checkout, a delivery failure here is
// the whole point of the endpoint, so it surfaces as a 500.
type WebhookHandler struct {
	logger *slog.Logger
	mailer Mailer
	from   string
}

func NewWebhookHandler(mailer Mailer, from string, log *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		logger: log,
		mailer: mailer,
		from:   from,
	}
}

func (h *WebhookHandler) NotifyRedemption(w http.ResponseWriter, r *http.Request) {
	var event dto.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest,
			dto.ErrorResponse{Error: "invalid request format"})
		return
	}
	if err := event.IsValid(); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest,
			dto.ErrorResponse{Error: err.Error()})
		return
	}

	notice := event.ToNotice()
	msg, err := mail.RedemptionConfirmation(h.from, notice)
	if err != nil {
		h.logger.LogAttrs(r.Context(),
			slog.LevelError, "failed to build redemption email",
			slog.Any(model.KeyLoggerError, err))
		writeJSON(w, h.logger, http.StatusInternalServerError,
			dto.ErrorResponse{Error: err.Error()})
		return
	}

	messageID, err := h.mailer.Send(r.Context(), msg)
	if err != nil {
		var notConfigured *serviceerrs.NotConfiguredError
		if errors.As(err, &notConfigured) {
			writeJSON(w, h.logger, http.StatusInternalServerError,
				dto.ErrorResponse{Error: "email service not configured"})
			return
		}
		h.logger.LogAttrs(r.Context(),
			slog.LevelError, "failed to send redemption email",
			slog.Any(model.KeyLoggerError, err),
			slog.String("email", notice.Email))
		writeJSON(w, h.logger, http.StatusInternalServerError,
			dto.ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.LogAttrs(r.Context(),
		slog.LevelInfo, "redemption email sent",
		slog.String("email", notice.Email),
		slog.String("message_id", messageID))

	writeJSON(w, h.logger, http.StatusOK, dto.WebhookResponse{
		Success: true,
		Message: "Email sent successfully",
		Data: dto.WebhookReceipt{
			RedemptionNotice: notice,
			MessageID:        messageID,
			Timestamp:        time.Now().UTC().Format(time.RFC3339),
			Provider:         "resend",
		},
	})
}
