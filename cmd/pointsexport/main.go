// Command pointsexport dumps every loyalty customer's balance to a CSV
// file for the POS back office.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/wingden/loyalty-gateway/internal/batch"
	"github.com/wingden/loyalty-gateway/internal/config"
	"github.com/wingden/loyalty-gateway/internal/model"
	"github.com/wingden/loyalty-gateway/internal/upstream/rivo"
	"github.com/wingden/loyalty-gateway/internal/utils/logger"
)

const exportFile = "pos_export.csv"

func main() {
	log := logger.New(slog.LevelInfo)
	cfg := config.NewBuilder(log).
		FromDotEnv().
		FromEnv().
		GetConfig()

	if !cfg.RivoConfigured() {
		log.LogAttrs(context.Background(),
			slog.LevelError, "RIVO_API_KEY is not set")
		os.Exit(1)
	}

	out, err := os.Create(exportFile)
	if err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "failed to create the export file",
			slog.Any(model.KeyLoggerError, err))
		os.Exit(1)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.LogAttrs(context.Background(),
				slog.LevelError, "failed to close the export file",
				slog.Any(model.KeyLoggerError, err))
		}
	}()

	loyalty := rivo.New(cfg.RivoBaseURL, cfg.RivoAPIKey)
	count, err := batch.ExportCustomers(context.Background(), loyalty, out, time.Now())
	if err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError, "export failed",
			slog.Any(model.KeyLoggerError, err))
		os.Exit(1)
	}

	log.LogAttrs(context.Background(),
		slog.LevelInfo, "export finished",
		slog.String("file", exportFile),
		slog.Int("customers", count))
}
