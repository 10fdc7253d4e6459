package dto

import (
	"errors"
	"strings"

	"github.com/wingden/loyalty-gateway/internal/model"
)

// WebhookEvent is the loosely-typed inbound redemption event. The provider
// has shipped the reward name and code under several keys over time, so
// extraction tries a fixed fallback order rather than trusting any one
// field.
type WebhookEvent struct {
	Name            *string          `json:"name"`
	Title           *string          `json:"title"`
	Code            *string          `json:"code"`
	PointsAmount    *int             `json:"points_amount"`
	Customer        *WebhookCustomer `json:"customer"`
	EventAttributes *EventAttributes `json:"event_attributes"`
}

type WebhookCustomer struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PointsTally *int   `json:"points_tally"`
}

type EventAttributes struct {
	Name         *string `json:"name"`
	RewardName   *string `json:"reward_name"`
	Title        *string `json:"title"`
	Code         *string `json:"code"`
	DiscountCode *string `json:"discount_code"`
	RewardCode   *string `json:"reward_code"`
}

// RewardName tries, in order: name, title, event_attributes.name,
// event_attributes.reward_name, event_attributes.title.
func (e *WebhookEvent) RewardName() string {
	candidates := []*string{e.Name, e.Title}
	if attrs := e.EventAttributes; attrs != nil {
		candidates = append(candidates, attrs.Name, attrs.RewardName, attrs.Title)
	}
	return firstNonEmpty(candidates)
}

// RewardCode tries, in order: code, event_attributes.code,
// event_attributes.discount_code, event_attributes.reward_code.
func (e *WebhookEvent) RewardCode() string {
	candidates := []*string{e.Code}
	if attrs := e.EventAttributes; attrs != nil {
		candidates = append(candidates, attrs.Code, attrs.DiscountCode, attrs.RewardCode)
	}
	return firstNonEmpty(candidates)
}

func (e *WebhookEvent) CustomerName() string {
	if e.Customer == nil {
		return "Valued Customer"
	}
	name := strings.TrimSpace(e.Customer.FirstName + " " + e.Customer.LastName)
	if name == "" {
		return "Valued Customer"
	}
	return name
}

// IsValid requires a customer email, a positive redeemed amount, and a
// present points tally. A tally of zero is valid; only its absence fails.
func (e *WebhookEvent) IsValid() error {
	if e.Customer == nil || e.Customer.Email == "" ||
		e.PointsAmount == nil || *e.PointsAmount <= 0 ||
		e.Customer.PointsTally == nil {
		return errors.New("missing required fields from redemption webhook")
	}
	return nil
}

// ToNotice maps the event onto the flat shape the email builder consumes.
// Call only after IsValid.
func (e *WebhookEvent) ToNotice() model.RedemptionNotice {
	return model.RedemptionNotice{
		Email:           e.Customer.Email,
		CustomerName:    e.CustomerName(),
		PointsRedeemed:  *e.PointsAmount,
		PointsRemaining: *e.Customer.PointsTally,
		RewardName:      e.RewardName(),
		RewardCode:      e.RewardCode(),
	}
}

func firstNonEmpty(candidates []*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return ""
}
