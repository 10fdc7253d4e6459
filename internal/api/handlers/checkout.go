package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wingden/loyalty-gateway/internal/api/dto"
	"github.com/wingden/loyalty-gateway/internal/mail"
	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
)

// CheckoutHandler turns a POS cart into an order response and runs the two
// best-effort side effects: the loyalty accrual and, only when the accrual
// lands, the purchase confirmation email. Neither side effect may ever fail
// the checkout itself.
type CheckoutHandler struct {
	logger  *slog.Logger
	loyalty LoyaltyClient
	mailer  Mailer
	from    string
}

func NewCheckoutHandler(loyalty LoyaltyClient, mailer Mailer, from string, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		logger:  log,
		loyalty: loyalty,
		mailer:  mailer,
		from:    from,
	}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest,
			dto.ErrorResponse{Error: "invalid request format"})
		return
	}
	if err := req.IsValid(); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest,
			dto.ErrorResponse{Error: err.Error()})
		return
	}

	order := model.NewOrder(req.Items, req.CustomerEmail, time.Now().UTC())
	h.logger.LogAttrs(r.Context(),
		slog.LevelInfo, "checkout",
		slog.String("email", order.CustomerEmail),
		slog.Int("total_items", order.TotalItems),
		slog.String("total_price", order.DisplayTotal()),
		slog.Int("points_earned", order.PointsEarned))

	pointsAdded := false
	var newBalance *int
	if order.PointsEarned > 0 {
		resp, err := h.loyalty.CreatePointsEvent(r.Context(), rivo.PointsEvent{
			CustomerIdentifier: order.CustomerEmail,
			PointsAmount:       order.PointsEarned,
			Source:             "manual",
			CustomActionName:   "POS Purchase",
			InternalNote: fmt.Sprintf(
				"Order placed via Wing Den POS - %d item(s)", order.TotalItems),
		})
		if err != nil {
			// The order stands even when the accrual is lost.
			h.logger.LogAttrs(r.Context(),
				slog.LevelError, "failed to add points",
				slog.Any(model.KeyLoggerError, err),
				slog.String("email", order.CustomerEmail))
		} else {
			pointsAdded = true
			newBalance = resp.NewBalance()
			h.sendConfirmation(r, order, newBalance)
		}
	}

	writeJSON(w, h.logger, http.StatusOK, dto.CheckoutResponse{
		Success: true,
		Message: "Order placed successfully!",
		Order: dto.OrderResponse{
			Items:            order.Lines,
			TotalItems:       order.TotalItems,
			TotalPrice:       order.DisplayTotal(),
			CustomerEmail:    order.CustomerEmail,
			Timestamp:        order.PlacedAt.Format(time.RFC3339),
			PointsEarned:     order.PointsEarned,
			PointsAdded:      pointsAdded,
			NewPointsBalance: newBalance,
		},
	})
}

func (h *CheckoutHandler) sendConfirmation(r *http.Request, order model.Order, newBalance *int) {
	msg, err := mail.PurchaseConfirmation(h.from, order, newBalance)
	if err != nil {
		h.logger.LogAttrs(r.Context(),
			slog.LevelError, "failed to build confirmation email",
			slog.Any(model.KeyLoggerError, err))
		return
	}
	if _, err := h.mailer.Send(r.Context(), msg); err != nil {
		h.logger.LogAttrs(r.Context(),
			slog.LevelWarn, "failed to send confirmation email",
			slog.Any(model.KeyLoggerError, err),
			slog.String("email", order.CustomerEmail))
		return
	}
	h.logger.LogAttrs(r.Context(),
		slog.LevelInfo, "confirmation email sent",
		slog.String("email", order.CustomerEmail))
}
