package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"merch-service/internal/config"
	"merch-service/internal/feed"
	"merch-service/internal/graphmail"
	"merch-service/internal/merch/model"
	"merch-service/internal/merch/service"
	"merch-service/internal/report"
	"merch-service/internal/shopify"
)

// Candidates returns the handler for POST /candidates: distributor feed in
// (multipart "feed", or fetched from the mailbox when absent), ranked new
// listing candidates out, as JSON or an xlsx report (format=xlsx).
func Candidates(cfg config.Config, shop *shopify.Client, mail *graphmail.Client, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := bindReqID(logger, r)
		defer r.Body.Close()

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		parsed, err := loadFeed(r, cfg, mail, log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		catalog := model.NewCatalog(parsed.Rows)

		store, err := loadSnapshot(r, shop, log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		opt := model.MatchOptions{
			NoveltyWeight: toFloat(r.FormValue("novelty_weight"), 1.0),
			StockWeight:   toFloat(r.FormValue("stock_weight"), 1.0),
			SeasonWeight:  toFloat(r.FormValue("season_weight"), 1.0),
			StockCap:      atoi(r.FormValue("stock_cap"), cfg.ScoreStockCap),
			CurrentSeason: formOr(r, "season", cfg.CurrentSeason),
		}
		candidates, listed := service.NewCandidateMatcher(opt).Partition(catalog, store)

		if r.FormValue("format") == "xlsx" {
			xlsxHeaders(w, "candidates.xlsx")
			if err := report.WriteCandidates(w, candidates, listed); err != nil {
				log.Error().Err(err).Msg("write candidates workbook")
			}
		} else {
			resp := map[string]any{
				"candidates":     candidates,
				"already_listed": listed,
				"feed_rows":      len(parsed.Rows),
				"data_errors":    parsed.Errors,
			}
			if toBool(r.FormValue("vocab"), false) {
				resp["color_vocab"] = feed.ColorVocab(parsed.Rows)
			}
			writeJSON(w, resp, log)
		}

		log.Info().
			Int("feed_rows", len(parsed.Rows)).
			Int("candidates", len(candidates)).
			Int("already_listed", len(listed)).
			Dur("elapsed", time.Since(start)).
			Msg("candidates done")
	}
}

// Listings returns the handler for POST /listings: feed + reviewed
// selection in, assembled products out, as JSON or the draft workbook.
func Listings(cfg config.Config, maps *service.ConfigMaps, shop *shopify.Client, mail *graphmail.Client, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := bindReqID(logger, r)
		defer r.Body.Close()

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		res, parsed, err := assemble(r, cfg, maps, shop, mail, log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if r.FormValue("format") == "xlsx" {
			xlsxHeaders(w, "listings-draft.xlsx")
			if err := report.WriteListingsDraft(w, res.Products); err != nil {
				log.Error().Err(err).Msg("write listings workbook")
			}
		} else {
			writeJSON(w, map[string]any{
				"products":    res.Products,
				"not_found":   res.NotFound,
				"excluded":    res.Excluded,
				"data_errors": parsed.Errors,
			}, log)
		}

		log.Info().
			Int("products", len(res.Products)).
			Int("not_found", len(res.NotFound)).
			Int("excluded", len(res.Excluded)).
			Dur("elapsed", time.Since(start)).
			Msg("listings done")
	}
}

// Upload returns the handler for POST /upload: feed + selection in,
// products created in the storefront, per-style statuses out.
func Upload(cfg config.Config, maps *service.ConfigMaps, shop *shopify.Client, mail *graphmail.Client, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := bindReqID(logger, r)
		defer r.Body.Close()

		if !shop.Configured() {
			http.Error(w, "storefront credentials not configured", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		res, _, err := assemble(r, cfg, maps, shop, mail, log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		results := shop.Upload(r.Context(), res.Products)
		writeJSON(w, map[string]any{
			"results":   results,
			"not_found": res.NotFound,
			"excluded":  res.Excluded,
		}, log)

		created := 0
		for _, u := range results {
			if u.Status == "created" {
				created++
			}
		}
		log.Info().
			Int("created", created).
			Int("failed", len(results)-created).
			Dur("elapsed", time.Since(start)).
			Msg("upload done")
	}
}

// assemble runs the shared feed→selection→products path of /listings and
// /upload.
func assemble(r *http.Request, cfg config.Config, maps *service.ConfigMaps, shop *shopify.Client, mail *graphmail.Client, log zerolog.Logger) (model.AssembleResult, feed.Result, error) {
	parsed, err := loadFeed(r, cfg, mail, log)
	if err != nil {
		return model.AssembleResult{}, feed.Result{}, err
	}
	catalog := model.NewCatalog(parsed.Rows)

	selection, err := loadSelection(r)
	if err != nil {
		return model.AssembleResult{}, feed.Result{}, err
	}

	store, err := loadSnapshot(r, shop, log)
	if err != nil {
		return model.AssembleResult{}, feed.Result{}, err
	}

	asm := service.NewListingAssembler(maps, cfg.Brand, cfg.Brand)
	return asm.Assemble(selection, catalog, store), parsed, nil
}
