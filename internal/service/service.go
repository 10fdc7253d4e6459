// Package service is the composition root: it wires config, upstream
// clients, handlers, and the router into a runnable gateway.
package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wingden/loyalty-gateway/internal/api/handlers"
	"github.com/wingden/loyalty-gateway/internal/config"
	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/router"
	"github.com/wingden/loyalty-gateway/internal/upstream/resend"
	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
	"github.com/wingden/loyalty-gateway/internal/utils/logger"
)

func initService(bootLog *slog.Logger) (*chi.Mux, *config.Config, *slog.Logger) {
	cfg := config.NewBuilder(bootLog).
		FromDotEnv().
		FromEnv().
		GetConfig()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	loyalty := rivo.New(cfg.RivoBaseURL, cfg.RivoAPIKey)
	mailer := resend.New(cfg.ResendAPIKey)

	rr := router.New(log)
	rr.SetRouter(&struct {
		*handlers.LoyaltyHandler
		*handlers.CheckoutHandler
		*handlers.WebhookHandler
		*handlers.HealthHandler
	}{
		LoyaltyHandler:  handlers.NewLoyaltyHandler(loyalty, log),
		CheckoutHandler: handlers.NewCheckoutHandler(loyalty, mailer, cfg.FromAddress(), log),
		WebhookHandler:  handlers.NewWebhookHandler(mailer, cfg.FromAddress(), log),
		HealthHandler:   handlers.NewHealthHandler(cfg, log),
	})

	return rr.GetRouter(), cfg, log
}

func RunServer() {
	mux, cfg, log := initService(logger.New(slog.LevelInfo))

	log.LogAttrs(context.Background(),
		slog.LevelInfo, "loyalty gateway started",
		slog.String("addr", cfg.RunAddr),
		slog.Bool("rivo_configured", cfg.RivoConfigured()),
		slog.Bool("shopify_configured", cfg.ShopifyConfigured()),
		slog.Bool("email_configured", cfg.EmailConfigured()),
	)

	if err := http.ListenAndServe(cfg.RunAddr, mux); err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "listen and serve error",
			slog.Any(model.KeyLoggerError, err))
	}
}
