package model

import "strings"

// Gender and Department hints arrive sparsely populated in distributor
// exports; the zero value is the explicit "unknown" variant and is resolved
// through the same fallback path as any unmapped lookup.
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMen     Gender = "men"
	GenderWomen   Gender = "women"
	GenderGirls   Gender = "girls"
	GenderBoys    Gender = "boys"
	GenderKids    Gender = "kids"
)

type Department string

const (
	DeptUnknown  Department = ""
	DeptApparel  Department = "apparel"
	DeptFootwear Department = "footwear"
	DeptHeadwear Department = "headwear"
)

// DistributorRow is one line item of the distributor feed. Immutable once
// parsed; the engine never writes back to it.
type DistributorRow struct {
	StyleCode    string  `json:"style_code"`
	ColorCode    string  `json:"color_code"` // fixed-width, zero-padded ("010" != "10")
	ColorNameRaw string  `json:"color_name_raw"`
	Size         string  `json:"size"`
	SKU          string  `json:"sku,omitempty"` // distributor's own SKU, informational
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	Quantity     int     `json:"quantity"`
	TitleRaw     string  `json:"title_raw"`
	Vendor       string  `json:"vendor,omitempty"`
	Type         string  `json:"type,omitempty"` // distributor department label, e.g. "NIKE - Core : Apparel"
	Gender       Gender  `json:"gender,omitempty"`
	Department   Department `json:"department,omitempty"`
	Season       string  `json:"season,omitempty"`
}

// StyleColorKey identifies one colorway of a style.
type StyleColorKey struct {
	Style string
	Color string
}

func (k StyleColorKey) String() string { return k.Style + "-" + k.Color }

// Catalog groups distributor rows by (style, color) preserving first-seen
// order, so every pass over it is deterministic.
type Catalog struct {
	rows  map[StyleColorKey][]DistributorRow
	order []StyleColorKey
}

func NewCatalog(rows []DistributorRow) *Catalog {
	c := &Catalog{rows: make(map[StyleColorKey][]DistributorRow)}
	for _, r := range rows {
		k := StyleColorKey{Style: r.StyleCode, Color: r.ColorCode}
		if _, ok := c.rows[k]; !ok {
			c.order = append(c.order, k)
		}
		c.rows[k] = append(c.rows[k], r)
	}
	return c
}

// Keys returns (style, color) keys in first-seen order.
func (c *Catalog) Keys() []StyleColorKey { return c.order }

func (c *Catalog) Rows(k StyleColorKey) []DistributorRow { return c.rows[k] }

func (c *Catalog) Len() int { return len(c.order) }

// RowsForStyle returns all rows of every colorway of a style, in key order.
func (c *Catalog) RowsForStyle(style string) []DistributorRow {
	var out []DistributorRow
	for _, k := range c.order {
		if k.Style == style {
			out = append(out, c.rows[k]...)
		}
	}
	return out
}

func (c *Catalog) TotalQuantity(k StyleColorKey) int {
	total := 0
	for _, r := range c.rows[k] {
		total += r.Quantity
	}
	return total
}

// Season returns the first non-empty season among the key's rows.
func (c *Catalog) Season(k StyleColorKey) string {
	for _, r := range c.rows[k] {
		if s := strings.TrimSpace(r.Season); s != "" {
			return s
		}
	}
	return ""
}

// CatalogEntry is one listing of the existing store catalog snapshot:
// a handle plus the SKUs listed under it. Read-only for the run.
type CatalogEntry struct {
	ID     int64    `json:"id,omitempty"`
	Handle string   `json:"handle"`
	Title  string   `json:"title"`
	Vendor string   `json:"vendor,omitempty"`
	SKUs   []string `json:"skus"`
}

// StoreSnapshot indexes a snapshot of the store catalog for existence
// checks. SKUs are compared case-insensitively after trimming.
type StoreSnapshot struct {
	skus    map[string]struct{}
	titles  map[string]struct{}
	handles map[string]struct{}
}

func NewStoreSnapshot(entries []CatalogEntry) *StoreSnapshot {
	s := &StoreSnapshot{
		skus:    make(map[string]struct{}),
		titles:  make(map[string]struct{}),
		handles: make(map[string]struct{}),
	}
	for _, e := range entries {
		if h := strings.TrimSpace(strings.ToLower(e.Handle)); h != "" {
			s.handles[h] = struct{}{}
		}
		if t := strings.TrimSpace(e.Title); t != "" {
			s.titles[t] = struct{}{}
		}
		for _, sku := range e.SKUs {
			if v := normKey(sku); v != "" {
				s.skus[v] = struct{}{}
			}
		}
	}
	return s
}

func (s *StoreSnapshot) HasSKU(sku string) bool {
	_, ok := s.skus[normKey(sku)]
	return ok
}

// HasStyle reports whether any listed SKU belongs to the style code.
func (s *StoreSnapshot) HasStyle(style string) bool {
	st := normKey(style)
	if st == "" {
		return false
	}
	for sku := range s.skus {
		if strings.HasPrefix(sku, st) {
			return true
		}
	}
	return false
}

// HasStyleColor reports whether any listed SKU starts with the composed
// "STYLE-COLOR" prefix.
func (s *StoreSnapshot) HasStyleColor(style, color string) bool {
	prefix := normKey(style) + "-" + normKey(color)
	if prefix == "-" {
		return false
	}
	for sku := range s.skus {
		if strings.HasPrefix(sku, prefix) {
			return true
		}
	}
	return false
}

func (s *StoreSnapshot) HasTitle(title string) bool {
	_, ok := s.titles[strings.TrimSpace(title)]
	return ok
}

func (s *StoreSnapshot) HasHandle(handle string) bool {
	_, ok := s.handles[strings.TrimSpace(strings.ToLower(handle))]
	return ok
}

func normKey(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// NormalizedTitle is the canonical display title plus its token stream.
// Derived deterministically from the raw title; never mutated.
type NormalizedTitle struct {
	Title  string   `json:"title"`
	Tokens []string `json:"tokens"`
}

// VariantRecord is one sellable (color, size) combination.
type VariantRecord struct {
	StyleCode string   `json:"style_code"`
	SKU       string   `json:"sku"`
	ColorName string   `json:"color"` // option1
	Size      string   `json:"size"`  // option2
	Price     float64  `json:"price"`
	Cost      float64  `json:"cost"`
	Quantity  int      `json:"quantity"`
	Tags      []string `json:"tags"`
}

// ProductRecord is the assembled listing for one style, owning its variants.
type ProductRecord struct {
	StyleCode      string          `json:"style_code"`
	Title          string          `json:"title"`
	Handle         string          `json:"handle"`
	Vendor         string          `json:"vendor"`
	ProductType    string          `json:"product_type,omitempty"`
	Tags           []string        `json:"tags"`
	Collections    []string        `json:"collections"`
	BodyHTML       string          `json:"body_html"`
	Season         string          `json:"season,omitempty"`
	MSRP           float64         `json:"msrp,omitempty"`
	TotalInventory int             `json:"total_inventory"`
	Variants       []VariantRecord `json:"variants"`
}

// CandidateScore is one ranked row of the candidate report. Ephemeral.
type CandidateScore struct {
	StyleCode      string   `json:"style_code"`
	ColorCode      string   `json:"color_code"`
	Score          float64  `json:"score"`
	Reasons        []string `json:"reasons"`
	TitleRaw       string   `json:"title_raw,omitempty"`
	ColorNameRaw   string   `json:"color_name_raw,omitempty"`
	Season         string   `json:"season,omitempty"`
	TotalInventory int      `json:"total_inventory"`
	SizeSpread     string   `json:"size_spread,omitempty"`
}

// Size-spread labels: how evenly the colorway's inventory is distributed
// across its sizes. Display signal only, never part of the score.
const (
	SpreadBalanced = "Balanced"
	SpreadMixed    = "Mixed"
	SpreadSkewed   = "Skewed"
)

// Candidate reason codes.
const (
	ReasonNewStyle    = "new_style"
	ReasonNewColor    = "new_color"
	ReasonQtyAvail    = "qty_available"
	ReasonSeasonMatch = "season_match"
)

// MatchOptions hold the advisory score weights. No single term is meant to
// dominate; the defaults keep all three at parity.
type MatchOptions struct {
	NoveltyWeight float64 `json:"novelty_weight"`
	StockWeight   float64 `json:"stock_weight"`
	SeasonWeight  float64 `json:"season_weight"`
	StockCap      int     `json:"stock_cap"`
	CurrentSeason string  `json:"current_season"`
}

func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		NoveltyWeight: 1.0,
		StockWeight:   1.0,
		SeasonWeight:  1.0,
		StockCap:      30,
	}
}

// Selection is one requested (style, color) pair for listing assembly.
type Selection struct {
	StyleCode string `json:"style_code"`
	ColorCode string `json:"color_code"`
}

// AssembleResult carries successes plus the per-item failures that do not
// abort the batch.
type AssembleResult struct {
	Products []ProductRecord `json:"products"`
	NotFound []Selection     `json:"not_found,omitempty"`
	Excluded []StyleFailure  `json:"excluded,omitempty"`
}

// StyleFailure records a style dropped from the output and why.
type StyleFailure struct {
	StyleCode string `json:"style_code"`
	Reason    string `json:"reason"`
}
