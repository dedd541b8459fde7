package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"merch-service/internal/config"
	"merch-service/internal/graphmail"
	merchHnd "merch-service/internal/merch/handler"
	"merch-service/internal/merch/service"
	"merch-service/internal/middleware"
	"merch-service/internal/shopify"
	"merch-service/server/http/handlers"
)

func NewRouter(cfg config.Config, maps *service.ConfigMaps, shop *shopify.Client, mail *graphmail.Client, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Post("/candidates", merchHnd.Candidates(cfg, shop, mail, logger))
	r.Post("/listings", merchHnd.Listings(cfg, maps, shop, mail, logger))
	r.Post("/upload", merchHnd.Upload(cfg, maps, shop, mail, logger))

	return r
}
