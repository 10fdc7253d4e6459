package dto

import (
	"encoding/json"
	"errors"

	"github.com/wingden/loyalty-gateway/internal/model"
)

// RedeemRequest is the POS form's redemption call. Points and credits are
// optional and forwarded to the provider verbatim.
type RedeemRequest struct {
	Email      string `json:"email"`
	RewardID   string `json:"rewardId"`
	RewardName string `json:"rewardName,omitempty"`
	Points     int    `json:"points,omitempty"`
	Credits    int    `json:"credits,omitempty"`
}

func (r *RedeemRequest) IsValid() error {
	if r.Email == "" || r.RewardID == "" {
		return errors.New("missing required fields: email and rewardId")
	}
	return nil
}

type CheckoutRequest struct {
	Items         []model.CartLine `json:"items"`
	CustomerEmail string           `json:"customerEmail"`

	// PointsEarned is still sent by older POS form builds. The server
	// recomputes accrual from the item count and ignores this value.
	PointsEarned int `json:"pointsEarned,omitempty"`
}

func (r *CheckoutRequest) IsValid() error {
	if len(r.Items) == 0 {
		return errors.New("cart is empty")
	}
	if r.CustomerEmail == "" {
		return errors.New("customer email is required to earn points")
	}
	for _, item := range r.Items {
		if item.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
		if item.Price.IsNegative() {
			return errors.New("item price cannot be negative")
		}
	}
	return nil
}

// Response envelopes. Every body carries a success flag so the browser form
// can branch without inspecting status codes.

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type RewardsResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Rewards []model.Reward `json:"rewards"`
}

type CustomersResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []json.RawMessage `json:"data"`
}

type PointsResponse struct {
	Success  bool                  `json:"success"`
	Customer model.CustomerProfile `json:"customer"`
}

type RedeemResponse struct {
	Success    bool                     `json:"success"`
	Message    string                   `json:"message"`
	Redemption model.RedemptionDetails  `json:"redemption"`
	Reward     model.RedeemedReward     `json:"reward"`
	Customer   model.RedemptionCustomer `json:"customer"`
	Timestamp  string                   `json:"timestamp"`
}

type CheckoutResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

type OrderResponse struct {
	Items            []model.CartLine `json:"items"`
	TotalItems       int              `json:"totalItems"`
	TotalPrice       string           `json:"totalPrice"`
	CustomerEmail    string           `json:"customerEmail"`
	Timestamp        string           `json:"timestamp"`
	PointsEarned     int              `json:"pointsEarned"`
	PointsAdded      bool             `json:"pointsAdded"`
	NewPointsBalance *int             `json:"newPointsBalance"`
}

type WebhookResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    WebhookReceipt `json:"data"`
}

type WebhookReceipt struct {
	model.RedemptionNotice
	MessageID string `json:"messageId"`
	Timestamp string `json:"timestamp"`
	Provider  string `json:"provider"`
}

type HealthResponse struct {
	Uptime      float64         `json:"uptime"`
	Message     string          `json:"message"`
	Timestamp   int64           `json:"timestamp"`
	Environment string          `json:"environment"`
	Configured  ConfiguredFlags `json:"configured"`
}

type ConfiguredFlags struct {
	Rivo    bool `json:"rivo"`
	Shopify bool `json:"shopify"`
	Email   bool `json:"email"`
}

type MetaResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Note      string            `json:"note"`
}

type NotFoundResponse struct {
	Success            bool     `json:"success"`
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"availableEndpoints"`
}
