package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wingden/loyalty-gateway/internal/api/dto"
	"github.com/wingden/loyalty-gateway/internal/config"
)

const serviceVersion = "1.0.0"

// AvailableEndpoints is echoed by the 404 fallback.
var AvailableEndpoints = []string{
	"GET /",
	"GET /health",
	"GET /customers",
	"GET /rewards",
	"GET /points/{email}",
	"POST /redeem-points",
	"POST /checkout",
	"POST /notify-point-redemption",
}

type HealthHandler struct {
	logger    *slog.Logger
	cfg       *config.Config
	startedAt time.Time
}

func NewHealthHandler(cfg *config.Config, log *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:    log,
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

// Root serves the service metadata card.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, dto.MetaResponse{
		Message: "Wing Den Loyalty Gateway",
		Version: serviceVersion,
		Endpoints: map[string]string{
			"customers":        "GET /customers",
			"rewards":          "GET /rewards",
			"points":           "GET /points/{email}",
			"redeemPoints":     "POST /redeem-points",
			"checkout":         "POST /checkout",
			"notifyRedemption": "POST /notify-point-redemption",
			"health":           "GET /health",
		},
		Note: "checkout automatically awards 50 points per item purchased",
	})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, dto.HealthResponse{
		Uptime:      time.Since(h.startedAt).Seconds(),
		Message:     "OK",
		Timestamp:   time.Now().UnixMilli(),
		Environment: h.cfg.Environment,
		Configured: dto.ConfiguredFlags{
			Rivo:    h.cfg.RivoConfigured(),
			Shopify: h.cfg.ShopifyConfigured(),
			Email:   h.cfg.EmailConfigured(),
		},
	})
}

// NotFound answers anything outside the routed surface with the endpoint map.
func (h *HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusNotFound, dto.NotFoundResponse{
		Success:            false,
		Error:              "endpoint not found",
		AvailableEndpoints: AvailableEndpoints,
	})
}
