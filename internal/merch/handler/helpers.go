package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"merch-service/internal/config"
	"merch-service/internal/feed"
	"merch-service/internal/fileio"
	"merch-service/internal/graphmail"
	"merch-service/internal/merch/model"
	"merch-service/internal/middleware"
	"merch-service/internal/shopify"
)

func bindReqID(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if reqID := middleware.GetRequestID(r); reqID != "" {
		return logger.With().Str("req_id", reqID).Logger()
	}
	return logger
}

// loadFeed reads the multipart "feed" spreadsheet, or pulls it from the
// mailbox when the part is absent and mail fetch is configured.
func loadFeed(r *http.Request, cfg config.Config, mail *graphmail.Client, log zerolog.Logger) (feed.Result, error) {
	headerRow := atoi(r.FormValue("header_row"), 1)

	file, header, err := r.FormFile("feed")
	if err == nil {
		defer file.Close()
		records, err := fileio.ReadAnyMaps(file, header.Filename, headerRow)
		if err != nil {
			return feed.Result{}, fmt.Errorf("failed to read feed: %w", err)
		}
		return feed.Parse(records, cfg.FeedVendors), nil
	}
	if mail == nil {
		return feed.Result{}, errors.New("missing feed file")
	}

	path, err := mail.FetchFeed(r.Context(), cfg.FeedMailSubject, cfg.DataDir)
	if err != nil {
		return feed.Result{}, fmt.Errorf("feed mail fetch: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return feed.Result{}, err
	}
	defer f.Close()
	records, err := fileio.ReadAnyMaps(f, path, headerRow)
	if err != nil {
		return feed.Result{}, fmt.Errorf("failed to read fetched feed: %w", err)
	}
	log.Info().Str("file", path).Msg("feed loaded from mailbox")
	return feed.Parse(records, cfg.FeedVendors), nil
}

// loadSelection reads the reviewed picks from the multipart "selection"
// spreadsheet or from a "codes" form value of STYLE-COLOR strings.
func loadSelection(r *http.Request) ([]model.Selection, error) {
	file, header, err := r.FormFile("selection")
	if err == nil {
		defer file.Close()
		records, err := fileio.ReadAnyMaps(file, header.Filename, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to read selection: %w", err)
		}
		return feed.ParseSelection(records)
	}
	if codes := r.FormValue("codes"); codes != "" {
		split := strings.FieldsFunc(codes, func(c rune) bool {
			return c == ',' || c == '\n' || c == '\r' || c == ' ' || c == ';'
		})
		return feed.ParseSelectionCodes(split), nil
	}
	return nil, errors.New("missing selection: provide a selection file or codes")
}

// loadSnapshot builds the store index from an uploaded "store" spreadsheet
// (Handle/Title/Variant SKU columns), or live from the storefront when
// snapshot=true (default) and credentials are present. Otherwise empty.
func loadSnapshot(r *http.Request, shop *shopify.Client, log zerolog.Logger) (*model.StoreSnapshot, error) {
	file, header, err := r.FormFile("store")
	if err == nil {
		defer file.Close()
		records, err := fileio.ReadAnyMaps(file, header.Filename, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to read store file: %w", err)
		}
		entries := make([]model.CatalogEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, model.CatalogEntry{
				Handle: rec["Handle"],
				Title:  rec["Title"],
				SKUs:   []string{rec["Variant SKU"]},
			})
		}
		return model.NewStoreSnapshot(entries), nil
	}

	if toBool(r.FormValue("snapshot"), true) && shop.Configured() {
		entries, err := shop.Snapshot(r.Context())
		if err != nil {
			return nil, fmt.Errorf("storefront snapshot: %w", err)
		}
		return model.NewStoreSnapshot(entries), nil
	}
	log.Debug().Msg("no store snapshot; matching against empty catalog")
	return model.NewStoreSnapshot(nil), nil
}

func writeJSON(w http.ResponseWriter, v any, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

func xlsxHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Cache-Control", "no-store")
}

func formOr(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
