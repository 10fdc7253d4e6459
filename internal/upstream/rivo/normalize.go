package rivo

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/serviceerrs"
)

// NormalizeRewards flattens the reward catalog into the shape the POS form
// consumes. Only records with source "points" that are currently enabled
// survive; everything else is dropped without error.
func NormalizeRewards(resp RewardsResponse) []model.Reward {
	records := resp.Records()
	rewards := make([]model.Reward, 0, len(records))
	for _, rec := range records {
		attrs := rec.Attributes
		if attrs.Source != "points" || !attrs.Enabled {
			continue
		}
		value := decimal.Zero
		if attrs.RewardValue != nil {
			value = *attrs.RewardValue
		}
		rewards = append(rewards, model.Reward{
			ID:          rec.ID.String(),
			Name:        attrs.Name,
			Points:      attrs.PointsAmount,
			Value:       value,
			Description: attrs.PrettyDisplay,
		})
	}
	return rewards
}

// NormalizeCustomer flattens data.attributes into a profile. Any missing
// field defaults to its zero value; a missing data node means the customer
// does not exist upstream, which is a domain answer, not a parse error.
func NormalizeCustomer(resp CustomerResponse) (model.CustomerProfile, error) {
	if resp.Data == nil {
		return model.CustomerProfile{}, serviceerrs.ErrCustomerNotFound
	}
	attrs := resp.Data.Attributes
	profile := model.CustomerProfile{
		Email:     attrs.Email,
		FirstName: attrs.FirstName,
		LastName:  attrs.LastName,
		Points:    attrs.PointsTally,
		Credits:   attrs.CreditsTally,
	}
	if attrs.VIPTier != nil {
		profile.VIPTier = attrs.VIPTier.Name
	}
	return profile, nil
}

// NormalizeRedemption builds the receipt from the nested attributes tree.
// Every optional field stays nil when the provider omitted it; only a
// structurally absent data node is an error.
func NormalizeRedemption(resp RedemptionResponse) (model.RedemptionReceipt, error) {
	if resp.Data == nil {
		return model.RedemptionReceipt{}, serviceerrs.ErrMalformedResponse
	}
	attrs := resp.Data.Attributes

	receipt := model.RedemptionReceipt{
		Redemption: model.RedemptionDetails{
			ID:              numberToString(attrs.ID),
			PointsRedeemed:  attrs.PointsAmount,
			CreditsRedeemed: attrs.CreditsAmount,
			AppliedAt:       attrs.AppliedAt,
			DiscountCode:    attrs.Code,
			ExpiresAt:       attrs.ExpiresAt,
			UsedAt:          attrs.UsedAt,
		},
	}

	if reward := attrs.Reward; reward != nil {
		receipt.Reward = model.RedeemedReward{
			ID:          numberToString(reward.ID),
			Name:        reward.Name,
			Type:        reward.RewardType,
			Value:       numberToString(reward.RewardValue),
			DisplayText: reward.PrettyDisplay,
		}
	}
	// The redemption-level name wins over the catalog name when present.
	if attrs.Name != nil {
		receipt.Reward.Name = attrs.Name
	}

	if customer := attrs.Customer; customer != nil {
		receipt.Customer = model.RedemptionCustomer{
			Email:            customer.Email,
			FirstName:        customer.FirstName,
			LastName:         customer.LastName,
			PointsRemaining:  customer.PointsTally,
			CreditsRemaining: customer.CreditsTally,
			LoyaltyStatus:    customer.LoyaltyStatus,
		}
		if customer.VIPTier != nil {
			receipt.Customer.VIPTier = &customer.VIPTier.Name
		}
	}

	return receipt, nil
}

func numberToString(n *json.Number) *string {
	if n == nil {
		return nil
	}
	s := n.String()
	return &s
}
