package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"merch-service/internal/config"
	"merch-service/internal/graphmail"
	"merch-service/internal/merch/service"
	"merch-service/internal/shopify"
	serverhttp "merch-service/server/http"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	maps, err := service.LoadConfigMaps(cfg.AbbrMapCSV, cfg.ProductTypeMapCSV, cfg.TitleCategoryMapCSV, cfg.ColorCodeMapCSV)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config maps")
	}

	shop := shopify.New(cfg.ShopifyDomain, cfg.ShopifyToken, cfg.ShopifyThrottleMS, logger)
	if !shop.Configured() {
		logger.Warn().Msg("storefront credentials absent; snapshot and upload disabled")
	}

	var mail *graphmail.Client
	if cfg.GraphTenantID != "" && cfg.GraphClientID != "" && cfg.GraphSecret != "" && cfg.GraphUser != "" {
		mail = graphmail.New(context.Background(), cfg.GraphTenantID, cfg.GraphClientID, cfg.GraphSecret, cfg.GraphUser, logger)
	} else {
		logger.Warn().Msg("graph mail credentials absent; feed must be uploaded")
	}

	r := serverhttp.NewRouter(cfg, maps, shop, mail, logger)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
