package shopify

import (
	"context"
	"fmt"
	"net/url"

	"merch-service/internal/merch/model"
)

type restVariant struct {
	ID              int64   `json:"id"`
	SKU             string  `json:"sku"`
	Price           string  `json:"price"`
	CompareAtPrice  string  `json:"compare_at_price"`
	Option1         string  `json:"option1"`
	Option2         string  `json:"option2"`
	InventoryItemID int64   `json:"inventory_item_id"`
	InventoryQty    int     `json:"inventory_quantity"`
}

type restProduct struct {
	ID       int64         `json:"id"`
	Title    string        `json:"title"`
	Handle   string        `json:"handle"`
	Vendor   string        `json:"vendor"`
	Type     string        `json:"product_type"`
	Tags     string        `json:"tags"`
	Status   string        `json:"status"`
	Variants []restVariant `json:"variants"`
}

type productsPage struct {
	Products []restProduct `json:"products"`
}

// Snapshot pages through the catalog and returns every product with its
// variant SKUs, titles and handles. Pagination follows the Link header.
func (c *Client) Snapshot(ctx context.Context) ([]model.CatalogEntry, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("shopify: credentials not configured")
	}
	q := url.Values{}
	q.Set("limit", "250")
	q.Set("fields", "id,title,handle,vendor,product_type,tags,status,variants")
	next := c.base() + "/products.json?" + q.Encode()

	var out []model.CatalogEntry
	pages := 0
	for next != "" {
		var page productsPage
		n, err := c.getJSON(ctx, next, &page)
		if err != nil {
			return nil, err
		}
		pages++
		for _, p := range page.Products {
			e := model.CatalogEntry{
				ID:     p.ID,
				Title:  p.Title,
				Handle: p.Handle,
				Vendor: p.Vendor,
			}
			for _, v := range p.Variants {
				if v.SKU != "" {
					e.SKUs = append(e.SKUs, v.SKU)
				}
			}
			out = append(out, e)
		}
		next = n
	}
	c.log.Info().Int("products", len(out)).Int("pages", pages).Msg("storefront snapshot loaded")
	return out, nil
}
