package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wingden/loyalty-gateway/internal/api/dto"
	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/serviceerrs"
	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
)

// LoyaltyHandler fronts the read and redemption paths of the loyalty
// provider: reward catalog, customer lookups, and point redemptions.
type LoyaltyHandler struct {
	logger  *slog.Logger
	loyalty LoyaltyClient
}

func NewLoyaltyHandler(loyalty LoyaltyClient, log *slog.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{
		logger:  log,
		loyalty: loyalty,
	}
}

func (h *LoyaltyHandler) GetRewards(w http.ResponseWriter, r *http.Request) {
	resp, err := h.loyalty.ListRewards(r.Context())
	if err != nil {
		h.logger.LogAttrs(r.Context(),
			slog.LevelError, "failed to fetch rewards",
			slog.Any(model.KeyLoggerError, err))
		writeJSON(w, h.logger, http.StatusInternalServerError,
			dto.ErrorResponse{Error: err.Error()})
		return
	}

	rewards := rivo.NormalizeRewards(resp)
	writeJSON(w, h.logger, http.StatusOK, dto.RewardsResponse{
		Success: true,
		Count:   len(rewards),
		Rewards: rewards,
	})
}

func (h *LoyaltyHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.loyalty.ListCustomers(r.Context())
	if err != nil {
		h.logger.LogAttrs(r.Context(),
			slog.LevelError, "failed to fetch customers",
			slog.Any(model.KeyLoggerError, err))
		writeJSON(w, h.logger, http.StatusInternalServerError,
			dto.ErrorResponse{Error: err.Error()})
		return
	}

	records := resp.Records()
	if records == nil {
		records = []json.RawMessage{}
	}
	writeJSON(w, h.logger, http.StatusOK, dto.CustomersResponse{
		Success: true,
		Count:   len(records),
		Data:    records,
	})
}

func (h *LoyaltyHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !strings.Contains(email, "@") {
		writeJSON(w, h.logger, http.StatusBadRequest,
			dto.ErrorResponse{Error: "invalid email address"})
		return
	}

	resp, err := h.loyalty.GetCustomer(r.Context(), email)
	if err != nil {
		if isNotFound(err) {
			writeJSON(w, h.logger, http.StatusNotFound,
				dto.ErrorResponse{Error: "customer not found"})
			return
		}
		h.logger.LogAttrs(r.Context(),
			slog.LevelError, "failed to fetch customer points",
			slog.Any(model.KeyLoggerError, err),
			slog.String("email", email))
		writeJSON(w, h.logger, http.StatusInternalServerError,
			dto.ErrorResponse{Error: err.Error()})
		return
	}

	customer, err := rivo.NormalizeCustomer(resp)
	if err != nil {
		// A well-formed answer without a data node is the provider's way
		// of saying the customer does not exist.
		writeJSON(w, h.logger, http.StatusNotFound,
			dto.ErrorResponse{Error: "customer not found"})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, dto.PointsResponse{
		Success:  true,
		Customer: customer,
	})
}

func (h *LoyaltyHandler) RedeemPoints(w http.ResponseWriter, r *http.Request) {
	var req dto.RedeemRequest
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

	h.logger.LogAttrs(r.Context(),
		slog.LevelInfo, "points redemption requested",
		slog.String("email", req.Email),
		slog.String("reward_id", req.RewardID))

	resp, err := h.loyalty.CreateRedemption(r.Context(), rivo.RedemptionForm{
		Email:    req.Email,
		RewardID: req.RewardID,
		Points:   req.Points,
		Credits:  req.Credits,
	})
	if err != nil {
		h.logger.LogAttrs(r.Context(),
			slog.LevelError, "redemption failed",
			slog.Any(model.KeyLoggerError, err))
		writeJSON(w, h.logger, http.StatusInternalServerError,
			dto.ErrorResponse{Error: err.Error()})
		return
	}

	receipt, err := rivo.NormalizeRedemption(resp)
	if err != nil {
		h.logger.LogAttrs(r.Context(),
			slog.LevelError, "redemption answer is malformed",
			slog.Any(model.KeyLoggerError, err))
		writeJSON(w, h.logger, http.StatusInternalServerError,
			dto.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, dto.RedeemResponse{
		Success:    true,
		Message:    "Points redeemed successfully!",
		Redemption: receipt.Redemption,
		Reward:     receipt.Reward,
		Customer:   receipt.Customer,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

func isNotFound(err error) bool {
	var reqErr *serviceerrs.UpstreamRequestError
	if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
		return true
	}
	return errors.Is(err, serviceerrs.ErrCustomerNotFound)
}
