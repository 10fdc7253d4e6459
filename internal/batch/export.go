// Package batch holds the one-shot CSV conversions: exporting loyalty
// balances for the POS back office and importing historical POS orders
// into the upstream providers. There is no retry and no partial-failure
// recovery; a run is a single pass.
package batch

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
)

// CustomerLister is the slice of the Rivo client the export needs.
type CustomerLister interface {
	ListCustomers(ctx context.Context) (rivo.CustomersResponse, error)
}

// exportCustomer tolerates both the flat and the attribute-wrapped record
// shapes the customers listing has been seen to carry.
type exportCustomer struct {
	Email         string          `json:"email"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	PointsBalance *int            `json:"points_balance"`
	PointsTally   *int            `json:"points_tally"`
	Attributes    *exportCustomer `json:"attributes"`
}

func (c exportCustomer) flatten() exportCustomer {
	if c.Attributes != nil {
		return c.Attributes.flatten()
	}
	return c
}

func (c exportCustomer) balance() int {
	if c.PointsBalance != nil {
		return *c.PointsBalance
	}
	if c.PointsTally != nil {
		return *c.PointsTally
	}
	return 0
}

// ExportCustomers fetches every loyalty customer and writes one CSV row per
// record. It returns the number of exported customers.
func ExportCustomers(ctx context.Context, lister CustomerLister, w io.Writer, now time.Time) (int, error) {
	resp, err := lister.ListCustomers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list customers: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"customer_email", "customer_name", "points_balance", "last_updated"}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write the CSV header: %w", err)
	}

	records := resp.Records()
	for _, raw := range records {
		var c exportCustomer
		if err := json.Unmarshal(raw, &c); err != nil {
			return 0, fmt.Errorf("failed to decode a customer record: %w", err)
		}
		c = c.flatten()

		name := strings.TrimSpace(c.FirstName + " " + c.LastName)
		row := []string{
			c.Email,
			name,
			strconv.Itoa(c.balance()),
			now.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write a CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush the CSV: %w", err)
	}
	return len(records), nil
}
