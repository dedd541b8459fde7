package shopify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"merch-service/internal/merch/model"
)

// UploadResult reports what one product upload produced.
type UploadResult struct {
	StyleCode string `json:"style_code"`
	ProductID int64  `json:"product_id,omitempty"`
	Handle    string `json:"handle,omitempty"`
	Status    string `json:"status"` // created | failed
	Error     string `json:"error,omitempty"`
}

type createVariant struct {
	SKU                 string `json:"sku"`
	Option1             string `json:"option1"`
	Option2             string `json:"option2"`
	Price               string `json:"price"`
	InventoryManagement string `json:"inventory_management"`
}

type createProduct struct {
	Title       string          `json:"title"`
	Handle      string          `json:"handle"`
	BodyHTML    string          `json:"body_html"`
	Vendor      string          `json:"vendor"`
	ProductType string          `json:"product_type"`
	Tags        string          `json:"tags"`
	Status      string          `json:"status"`
	Options     []productOption `json:"options"`
	Variants    []createVariant `json:"variants"`
}

type productOption struct {
	Name string `json:"name"`
}

type createResponse struct {
	Product restProduct `json:"product"`
}

type locationsResponse struct {
	Locations []struct {
		ID     int64 `json:"id"`
		Active bool  `json:"active"`
	} `json:"locations"`
}

// Upload creates each product as a draft, then sets stock at the primary
// location and cost on every inventory item. Failures are per-product;
// one bad style never aborts the batch.
func (c *Client) Upload(ctx context.Context, products []model.ProductRecord) []UploadResult {
	locID, err := c.primaryLocation(ctx)
	if err != nil {
		out := make([]UploadResult, 0, len(products))
		for _, p := range products {
			out = append(out, UploadResult{StyleCode: p.StyleCode, Status: "failed", Error: err.Error()})
		}
		return out
	}

	out := make([]UploadResult, 0, len(products))
	for _, p := range products {
		res := c.uploadOne(ctx, p, locID)
		if res.Status == "failed" {
			c.log.Error().Str("style", p.StyleCode).Str("error", res.Error).Msg("product upload failed")
		} else {
			c.log.Info().Str("style", p.StyleCode).Int64("product_id", res.ProductID).Msg("product created")
		}
		out = append(out, res)
	}
	return out
}

func (c *Client) uploadOne(ctx context.Context, p model.ProductRecord, locID int64) UploadResult {
	body := createProduct{
		Title:       p.Title,
		Handle:      p.Handle,
		BodyHTML:    p.BodyHTML,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Tags:        strings.Join(p.Tags, ", "),
		Status:      "draft",
		Options:     []productOption{{Name: "Color"}, {Name: "Size"}},
	}
	for _, v := range p.Variants {
		body.Variants = append(body.Variants, createVariant{
			SKU:                 v.SKU,
			Option1:             v.ColorName,
			Option2:             v.Size,
			Price:               strconv.FormatFloat(v.Price, 'f', 2, 64),
			InventoryManagement: "shopify",
		})
	}

	var resp createResponse
	if err := c.writeJSON(ctx, http.MethodPost, "/products.json", map[string]any{"product": body}, &resp); err != nil {
		return UploadResult{StyleCode: p.StyleCode, Status: "failed", Error: err.Error()}
	}

	// Stock and cost go per variant, matched back by SKU.
	bySKU := make(map[string]model.VariantRecord, len(p.Variants))
	for _, v := range p.Variants {
		bySKU[v.SKU] = v
	}
	for _, rv := range resp.Product.Variants {
		v, ok := bySKU[rv.SKU]
		if !ok {
			continue
		}
		if err := c.setInventoryLevel(ctx, locID, rv.InventoryItemID, v.Quantity); err != nil {
			return UploadResult{StyleCode: p.StyleCode, ProductID: resp.Product.ID, Status: "failed", Error: err.Error()}
		}
		if v.Cost > 0 {
			if err := c.setInventoryCost(ctx, rv.InventoryItemID, v.Cost); err != nil {
				return UploadResult{StyleCode: p.StyleCode, ProductID: resp.Product.ID, Status: "failed", Error: err.Error()}
			}
		}
	}
	return UploadResult{
		StyleCode: p.StyleCode,
		ProductID: resp.Product.ID,
		Handle:    resp.Product.Handle,
		Status:    "created",
	}
}

func (c *Client) primaryLocation(ctx context.Context) (int64, error) {
	var resp locationsResponse
	if _, err := c.getJSON(ctx, c.base()+"/locations.json", &resp); err != nil {
		return 0, err
	}
	for _, l := range resp.Locations {
		if l.Active {
			return l.ID, nil
		}
	}
	return 0, fmt.Errorf("shopify: no active location")
}

func (c *Client) setInventoryLevel(ctx context.Context, locID, itemID int64, qty int) error {
	body := map[string]any{
		"location_id":       locID,
		"inventory_item_id": itemID,
		"available":         qty,
	}
	return c.writeJSON(ctx, http.MethodPost, "/inventory_levels/set.json", body, nil)
}

func (c *Client) setInventoryCost(ctx context.Context, itemID int64, cost float64) error {
	body := map[string]any{
		"inventory_item": map[string]any{
			"id":   itemID,
			"cost": strconv.FormatFloat(cost, 'f', 2, 64),
		},
	}
	path := fmt.Sprintf("/inventory_items/%d.json", itemID)
	return c.writeJSON(ctx, http.MethodPut, path, body, nil)
}
