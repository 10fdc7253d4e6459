package batch

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
	"github.com/wingden/loyalty-gateway/internal/upstream/shopify"
)

// DraftOrderCreator is the slice of the Shopify client the import needs.
type DraftOrderCreator interface {
	CreateDraftOrder(ctx context.Context, input shopify.DraftOrderInput) (string, error)
}

// PointsEventCreator is the slice of the Rivo client the import needs.
type PointsEventCreator interface {
	CreatePointsEvent(ctx context.Context, event rivo.PointsEvent) (rivo.PointsEventResponse, error)
}

// OrderRow is one line of the POS orders CSV.
type OrderRow struct {
	OrderID       string
	CustomerEmail string
	CustomerName  string
	Product       string
	Quantity      int
	Price         string
	PointsEarned  int
}

// Result records the outcome of importing one order.
type Result struct {
	RunID        string `json:"run_id"`
	OrderID      string `json:"order_id"`
	Status       string `json:"status"`
	PointsAdded  int    `json:"points_added"`
	DraftOrderID string `json:"draft_order_id,omitempty"`
}

// ReadOrders parses the POS orders CSV. The header row names the columns;
// order does not matter.
func ReadOrders(r io.Reader) ([]OrderRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read the CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("the CSV is empty")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	orders := make([]OrderRow, 0, len(records)-1)
	for n, row := range records[1:] {
		quantity, err := strconv.Atoi(field(row, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad quantity: %w", n+1, err)
		}
		points, err := strconv.Atoi(field(row, "points_earned"))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad points_earned: %w", n+1, err)
		}
		orders = append(orders, OrderRow{
			OrderID:       field(row, "order_id"),
			CustomerEmail: field(row, "customer_email"),
			CustomerName:  field(row, "customer_name"),
			Product:       field(row, "product"),
			Quantity:      quantity,
			Price:         field(row, "price"),
			PointsEarned:  points,
		})
	}
	return orders, nil
}

// ImportOrders replays POS orders upstream: a Shopify draft order per row,
// then a Rivo points event for the earned points. The first failure
// terminates the run; results collected so far are still returned so the
// caller can flush them.
func ImportOrders(
	ctx context.Context,
	log *slog.Logger,
	store DraftOrderCreator,
	loyalty PointsEventCreator,
	orders []OrderRow,
) ([]Result, error) {
	runID := uuid.NewString()
	results := make([]Result, 0, len(orders))

	for _, order := range orders {
		log.LogAttrs(ctx,
			slog.LevelInfo, "importing order",
			slog.String("order_id", order.OrderID),
			slog.String("email", order.CustomerEmail))

		firstName, lastName := splitName(order.CustomerName)
		draftID, err := store.CreateDraftOrder(ctx, shopify.DraftOrderInput{
			Email: order.CustomerEmail,
			LineItems: []shopify.LineItemInput{{
				Title:    order.Product,
				Quantity: order.Quantity,
				Price:    order.Price,
			}},
			BillingAddress: shopify.AddressInput{
				FirstName: firstName,
				LastName:  lastName,
			},
		})
		if err != nil {
			return results, fmt.Errorf("order %s: %w", order.OrderID, err)
		}

		if _, err := loyalty.CreatePointsEvent(ctx, rivo.PointsEvent{
			CustomerIdentifier: order.CustomerEmail,
			PointsAmount:       order.PointsEarned,
			Source:             "manual",
			CustomActionName:   "POS Import",
			InternalNote:       "POS Order " + order.OrderID,
		}); err != nil {
			return results, fmt.Errorf("order %s: %w", order.OrderID, err)
		}

		results = append(results, Result{
			RunID:        runID,
			OrderID:      order.OrderID,
			Status:       "success",
			PointsAdded:  order.PointsEarned,
			DraftOrderID: draftID,
		})
		log.LogAttrs(ctx,
			slog.LevelInfo, "order imported",
			slog.String("order_id", order.OrderID),
			slog.Int("points_added", order.PointsEarned))
	}
	return results, nil
}

// WriteResults renders the import results JSON document.
func WriteResults(w io.Writer, results []Result) error {
	encoded, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode the results: %w", err)
	}
	if _, err := w.Write(encoded); err != nil {
		return fmt.Errorf("failed to write the results: %w", err)
	}
	return nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
