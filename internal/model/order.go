package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a single position of the POS cart. It exists only in the
// checkout request body; nothing is persisted.
type CartLine struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// LineTotal is price * quantity for the line.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order aggregates a checkout request. Accrual is fixed-rate:
// PointsEarned = total item count * PointsPerItem.
type Order struct {
	Lines         []CartLine
	TotalItems    int
	TotalPrice    decimal.Decimal
	CustomerEmail string
	PointsEarned  int
	PlacedAt      time.Time
}

func NewOrder(lines []CartLine, customerEmail string, placedAt time.Time) Order {
	totalItems := 0
	totalPrice := decimal.Zero
	for _, l := range lines {
		totalItems += l.Quantity
		totalPrice = totalPrice.Add(l.LineTotal())
	}

	return Order{
		Lines:         lines,
		TotalItems:    totalItems,
		TotalPrice:    totalPrice,
		CustomerEmail: customerEmail,
		PointsEarned:  totalItems * PointsPerItem,
		PlacedAt:      placedAt,
	}
}

// DisplayTotal renders the order total with two fractional digits,
// the display rounding used everywhere a money amount leaves the service.
func (o Order) DisplayTotal() string {
	return o.TotalPrice.StringFixed(2)
}
