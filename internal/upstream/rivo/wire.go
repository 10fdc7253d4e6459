package rivo

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Wire shapes of the Rivo API. Every field the provider may omit is either
// a pointer or zero-tolerant, so a sparse response decodes without error.

// RewardsResponse tolerates both the nested rewards envelope and a bare
// data list; the provider has answered with both.
type RewardsResponse struct {
	Rewards *RewardsList   `json:"rewards"`
	Data    []RewardRecord `json:"data"`
}

type RewardsList struct {
	Data []RewardRecord `json:"data"`
}

// Records picks whichever envelope the provider filled.
func (r RewardsResponse) Records() []RewardRecord {
	if r.Rewards != nil {
		return r.Rewards.Data
	}
	return r.Data
}

type RewardRecord struct {
	ID         json.Number      `json:"id"`
	Attributes RewardAttributes `json:"attributes"`
}

type RewardAttributes struct {
	Name          string           `json:"name"`
	Source        string           `json:"source"`
	Enabled       bool             `json:"enabled"`
	PointsAmount  int              `json:"points_amount"`
	RewardValue   *decimal.Decimal `json:"reward_value"`
	PrettyDisplay string           `json:"pretty_display_rewards"`
}

// CustomersResponse tolerates the two list envelopes the provider has been
// seen to answer with.
type CustomersResponse struct {
	Customers []json.RawMessage `json:"customers"`
	Data      []json.RawMessage `json:"data"`
}

// Records picks whichever envelope the provider filled.
func (r CustomersResponse) Records() []json.RawMessage {
	if r.Customers != nil {
		return r.Customers
	}
	return r.Data
}

type CustomerResponse struct {
	Data *CustomerRecord `json:"data"`
}

type CustomerRecord struct {
	ID         json.Number        `json:"id"`
	Attributes CustomerAttributes `json:"attributes"`
}

type CustomerAttributes struct {
	Email        string   `json:"email"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	PointsTally  int      `json:"points_tally"`
	CreditsTally int      `json:"credits_tally"`
	VIPTier      *VIPTier `json:"vip_tier"`
}

type VIPTier struct {
	Name string `json:"name"`
}

type RedemptionResponse struct {
	Data *RedemptionRecord `json:"data"`

	// Message holds a plain-text answer folded in by the form-encoded
	// adapter, or the provider's own message field.
	Message string `json:"message,omitempty"`
	Err     string `json:"error,omitempty"`
}

func (r RedemptionResponse) errorMessage(status int) string {
	if r.Err != "" {
		return r.Err
	}
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("HTTP %d", status)
}

type RedemptionRecord struct {
	ID         json.Number          `json:"id"`
	Attributes RedemptionAttributes `json:"attributes"`
}

type RedemptionAttributes struct {
	ID            *json.Number           `json:"id"`
	Name          *string                `json:"name"`
	PointsAmount  *int                   `json:"points_amount"`
	CreditsAmount *int                   `json:"credits_amount"`
	AppliedAt     *string                `json:"applied_at"`
	Code          *string                `json:"code"`
	ExpiresAt     *string                `json:"expires_at"`
	UsedAt        *string                `json:"used_at"`
	Reward        *RedeemedRewardAttrs   `json:"reward"`
	Customer      *RedeemedCustomerAttrs `json:"customer"`
}

type RedeemedRewardAttrs struct {
	ID            *json.Number `json:"id"`
	Name          *string      `json:"name"`
	RewardType    *string      `json:"reward_type"`
	RewardValue   *json.Number `json:"reward_value"`
	PrettyDisplay *string      `json:"pretty_display_rewards"`
}

type RedeemedCustomerAttrs struct {
	Email         *string  `json:"email"`
	FirstName     *string  `json:"first_name"`
	LastName      *string  `json:"last_name"`
	PointsTally   *int     `json:"points_tally"`
	CreditsTally  *int     `json:"credits_tally"`
	VIPTier       *VIPTier `json:"vip_tier"`
	LoyaltyStatus *string  `json:"loyalty_status"`
}

// PointsEvent is the accrual request posted after checkout.
type PointsEvent struct {
	CustomerIdentifier string `json:"customer_identifier"`
	PointsAmount       int    `json:"points_amount"`
	Source             string `json:"source"`
	CustomActionName   string `json:"custom_action_name"`
	InternalNote       string `json:"internal_note"`
}

type PointsEventResponse struct {
	Data *PointsEventRecord `json:"data"`
}

type PointsEventRecord struct {
	Attributes PointsEventAttributes `json:"attributes"`
}

type PointsEventAttributes struct {
	Customer *RedeemedCustomerAttrs `json:"customer"`
}

// NewBalance reports the customer's points tally after the event,
// or nil when the provider omitted it.
func (r PointsEventResponse) NewBalance() *int {
	if r.Data == nil || r.Data.Attributes.Customer == nil {
		return nil
	}
	return r.Data.Attributes.Customer.PointsTally
}
