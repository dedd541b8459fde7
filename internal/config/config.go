package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string
	DataDir      string

	// Lookup table CSVs. Missing files fall back to built-in defaults.
	AbbrMapCSV          string
	ProductTypeMapCSV   string
	TitleCategoryMapCSV string
	ColorCodeMapCSV     string

	// Brand identity and the feed vendor lines that belong to it.
	Brand       string
	FeedVendors []string

	// Candidate scoring.
	CurrentSeason string
	ScoreStockCap int

	// Storefront Admin API.
	ShopifyDomain     string
	ShopifyToken      string
	ShopifyThrottleMS int

	// Microsoft Graph mailbox holding the distributor feed ZIP.
	GraphTenantID   string
	GraphClientID   string
	GraphSecret     string
	GraphUser       string
	FeedMailSubject string
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	stockCap, _ := strconv.Atoi(getenv("SCORE_STOCK_CAP", "30"))
	throttle, _ := strconv.Atoi(getenv("SHOPIFY_THROTTLE_MS", "300"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  mb,
		LogFile:      getenv("LOG_FILE", "logs/merch-service.log"),
		DataDir:      getenv("DATA_DIR", "data"),

		AbbrMapCSV:          getenv("ABBR_MAP_CSV", "config/abbr_map.csv"),
		ProductTypeMapCSV:   getenv("PRODUCT_TYPE_MAP_CSV", "config/product_type_map.csv"),
		TitleCategoryMapCSV: getenv("TITLE_CATEGORY_MAP_CSV", "config/title_category_map.csv"),
		ColorCodeMapCSV:     getenv("COLOR_CODE_MAP_CSV", "config/color_code_map.csv"),

		Brand:       getenv("BRAND", "Nike"),
		FeedVendors: splitNonEmpty(getenv("FEED_VENDORS", "NIKE - Tennis,NIKE - Core,NIKE - Golf")),

		CurrentSeason: getenv("CURRENT_SEASON", ""),
		ScoreStockCap: stockCap,

		ShopifyDomain:     getenv("SHOPIFY_STORE_DOMAIN", ""),
		ShopifyToken:      getenv("SHOPIFY_ACCESS_TOKEN", ""),
		ShopifyThrottleMS: throttle,

		GraphTenantID:   getenv("TENANT_ID", ""),
		GraphClientID:   getenv("CLIENT_ID", ""),
		GraphSecret:     getenv("CLIENT_SECRET", ""),
		GraphUser:       getenv("GRAPH_USER", ""),
		FeedMailSubject: getenv("FEED_MAIL_SUBJECT", "Daily Inventory Availability"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func splitNonEmpty(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
