package model

// RedemptionReceipt is built once per redemption call from the provider's
// nested attributes tree and discarded after the response is sent. Every
// field the provider may omit is a pointer so absence survives the trip to
// the browser as null instead of a zero value.
type RedemptionReceipt struct {
	Redemption RedemptionDetails  `json:"redemption"`
	Reward     RedeemedReward     `json:"reward"`
	Customer   RedemptionCustomer `json:"customer"`
}

type RedemptionDetails struct {
	ID              *string `json:"id"`
	PointsRedeemed  *int    `json:"pointsRedeemed"`
	CreditsRedeemed *int    `json:"creditsRedeemed"`
	AppliedAt       *string `json:"appliedAt"`
	DiscountCode    *string `json:"discountCode"`
	ExpiresAt       *string `json:"expiresAt"`
	UsedAt          *string `json:"usedAt"`
}

type RedeemedReward struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Value       *string `json:"value"`
	DisplayText *string `json:"displayText"`
}

// RedemptionNotice is the handful of fields extracted from an inbound
// redemption webhook, used to format the confirmation email.
type RedemptionNotice struct {
	Email           string `json:"email"`
	CustomerName    string `json:"customerName"`
	PointsRedeemed  int    `json:"pointsRedeemed"`
	PointsRemaining int    `json:"pointsRemaining"`
	RewardName      string `json:"rewardName"`
	RewardCode      string `json:"rewardCode,omitempty"`
}

type RedemptionCustomer struct {
	Email            *string `json:"email"`
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	PointsRemaining  *int    `json:"pointsRemaining"`
	CreditsRemaining *int    `json:"creditsRemaining"`
	VIPTier          *string `json:"vipTier"`
	LoyaltyStatus    *string `json:"loyaltyStatus"`
}
