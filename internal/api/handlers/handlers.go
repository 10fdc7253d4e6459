// Package handlers holds the endpoint orchestrators. Each handler is one
// linear request -> upstream call(s) -> respond flow; there is no retry and
// no state shared between requests.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/upstream/resend"
	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
)

// LoyaltyClient is the slice of the Rivo client the handlers depend on.
type LoyaltyClient interface {
	ListRewards(ctx context.Context) (rivo.RewardsResponse, error)
	ListCustomers(ctx context.Context) (rivo.CustomersResponse, error)
	GetCustomer(ctx context.Context, email string) (rivo.CustomerResponse, error)
	CreateRedemption(ctx context.Context, form rivo.RedemptionForm) (rivo.RedemptionResponse, error)
	CreatePointsEvent(ctx context.Context, event rivo.PointsEvent) (rivo.PointsEventResponse, error)
}

// Mailer sends one transactional email and returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, msg resend.Message) (string, error)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set(model.HeaderContentType, model.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "failed to encode JSON response",
			slog.Any(model.KeyLoggerError, err))
	}
}
