// Command pointsimport replays historical POS orders into Shopify and
// Rivo from a CSV file and records the outcome of each order.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/wingden/loyalty-gateway/internal/batch"
	"github.com/wingden/loyalty-gateway/internal/config"
	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
	"github.com/wingden/loyalty-gateway/internal/upstream/shopify"
	"github.com/wingden/loyalty-gateway/internal/utils/logger"
)

const (
	ordersFile  = "pos_orders.csv"
	resultsFile = "import_results.json"
)

func main() {
	log := logger.New(slog.LevelInfo)
	cfg := config.NewBuilder(log).
		FromDotEnv().
		FromEnv().
		GetConfig()

	if !cfg.RivoConfigured() || !cfg.ShopifyConfigured() {
		log.LogAttrs(context.Background(),
			slog.LevelError, "RIVO_API_KEY, SHOPIFY_STORE and SHOPIFY_ACCESS_TOKEN must be set")
		os.Exit(1)
	}

	in, err := os.Open(ordersFile)
	if err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "failed to open the orders file",
			slog.Any(model.KeyLoggerError, err))
		os.Exit(1)
	}
	orders, err := batch.ReadOrders(in)
	_ = in.Close()
	if err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "failed to parse the orders file",
			slog.Any(model.KeyLoggerError, err))
		os.Exit(1)
	}

	store := shopify.New(cfg.ShopifyStore, cfg.ShopifyAccessToken)
	loyalty := rivo.New(cfg.RivoBaseURL, cfg.RivoAPIKey)

	results, runErr := batch.ImportOrders(context.Background(), log, store, loyalty, orders)

	// Flush whatever succeeded even when the run aborted midway.
	out, err := os.Create(resultsFile)
	if err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "failed to create the results file",
			slog.Any(model.KeyLoggerError, err))
		os.Exit(1)
	}
	if err := batch.WriteResults(out, results); err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "failed to write the results",
			slog.Any(model.KeyLoggerError, err))
	}
	if err := out.Close(); err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "failed to close the results file",
			slog.Any(model.KeyLoggerError, err))
	}

	if runErr != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "import aborted",
			slog.Int("imported", len(results)),
			slog.Any(model.KeyLoggerError, runErr))
		os.Exit(1)
	}
	log.LogAttrs(context.Background(),
		slog.LevelInfo, "import finished",
		slog.String("file", resultsFile),
		slog.Int("imported", len(results)))
}
