package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/metar-decoder/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/metar-decoder/internal/adapter/kafka"
	"github.com/couchcryptid/metar-decoder/internal/cache"
	"github.com/couchcryptid/metar-decoder/internal/config"
	"github.com/couchcryptid/metar-decoder/internal/i18n"
	"github.com/couchcryptid/metar-decoder/internal/observability"
	"github.com/couchcryptid/metar-decoder/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	catalog, err := i18n.DefaultCatalog()
	if err != nil {
		logger.Error("failed to load locale catalog", "error", err)
		os.Exit(1)
	}

	decoders, err := cache.NewDecoderSet(catalog, cfg.Format.Options(), cfg.Format.Locale, cfg.Format.CacheSize, metrics)
	if err != nil {
		logger.Error("failed to build decoders", "error", err)
		os.Exit(1)
	}
	logger.Info("decoders ready",
		"locales", catalog.Names(),
		"default_locale", cfg.Format.Locale,
		"cache_size", cfg.Format.CacheSize,
		"distance_units", cfg.Format.DistanceUnits,
		"direction_units", cfg.Format.DirectionUnits,
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(decoders.Default(), metrics, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, decoders, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return p.Run(gCtx)
	})

	// Shut the server down once a signal arrives or either worker fails.
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("decoder service error", "error", err)
	}

	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
