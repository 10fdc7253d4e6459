package model

import "github.com/shopspring/decimal"

// Reward is the flat catalog entry served to the POS form. Only rewards
// purchasable with points (source == "points") and currently enabled make
// it into this shape.
type Reward struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Points      int             `json:"points"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description"`
}
