package service

import (
	"sort"
	"strconv"
	"strings"

	"merch-service/internal/merch/model"
)

// skuSep joins style, color and size into the composed SKU.
const skuSep = "-"

// apparelSizeOrder is the canonical apparel sequence. Unrecognized tokens
// sort after all recognized ones, in encounter order, and are kept.
var apparelSizeOrder = map[string]int{
	"2XS": 0, "XXS": 1, "XS": 2, "S": 3, "M": 4, "L": 5,
	"XL": 6, "2XL": 7, "XXL": 7, "3XL": 8, "XXXL": 8, "4XL": 9, "5XL": 10,
}

// VariantBuilder expands a style's rows into ordered variant records.
type VariantBuilder struct {
	colors *ColorResolver
}

func NewVariantBuilder(colors *ColorResolver) *VariantBuilder {
	return &VariantBuilder{colors: colors}
}

type variantGroup struct {
	colorCode string
	size      string
	colorName string
	price     float64
	cost      float64
	qty       int
	seen      int // encounter index, tie-break for unrecognized sizes
}

// Build groups rows by (color, size), summing quantity across duplicates,
// resolves color names and emits variants in deterministic order: size
// ascending (numeric for footwear, canonical sequence for apparel), then
// color display name case-insensitive. Every composed SKU is checked
// against emitted, the run-scoped collision set; a collision aborts the
// whole style so nothing is partially emitted. The caller commits the
// returned SKUs to emitted only on success.
func (b *VariantBuilder) Build(styleCode string, rows []model.DistributorRow, footwear bool, tags *model.TagSet, emitted map[string]string) ([]model.VariantRecord, error) {
	style := model.NormalizeStyleCode(styleCode)

	groups := make(map[[2]string]*variantGroup)
	var order []*variantGroup
	for _, r := range rows {
		color := model.NormalizeColorCode(r.ColorCode)
		size := model.NormalizeSize(r.Size, footwear)
		key := [2]string{color, size}
		g, ok := groups[key]
		if !ok {
			g = &variantGroup{
				colorCode: color,
				size:      size,
				colorName: b.colors.Resolve(color, r.ColorNameRaw),
				price:     r.Price,
				cost:      r.Cost,
				seen:      len(order),
			}
			groups[key] = g
			order = append(order, g)
		}
		g.qty += r.Quantity
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, bb := order[i], order[j]
		ga, na, ca := sizeRank(a.size, footwear, a.seen)
		gb, nb, cb := sizeRank(bb.size, footwear, bb.seen)
		if ga != gb {
			return ga < gb
		}
		if na != nb {
			return na < nb
		}
		if ca != cb {
			return ca < cb
		}
		return strings.ToLower(a.colorName) < strings.ToLower(bb.colorName)
	})

	tagList := tags.Tags()
	out := make([]model.VariantRecord, 0, len(order))
	styleSKUs := make(map[string]struct{}, len(order))
	for _, g := range order {
		sku := style + skuSep + g.colorCode + skuSep + g.size
		if owner, ok := emitted[sku]; ok {
			return nil, model.CollisionError{Kind: "sku", Value: sku, StyleCode: owner}
		}
		if _, ok := styleSKUs[sku]; ok {
			return nil, model.CollisionError{Kind: "sku", Value: sku, StyleCode: style}
		}
		styleSKUs[sku] = struct{}{}
		out = append(out, model.VariantRecord{
			StyleCode: style,
			SKU:       sku,
			ColorName: g.colorName,
			Size:      g.size,
			Price:     g.price,
			Cost:      g.cost,
			Quantity:  g.qty,
			Tags:      tagList,
		})
	}
	return out, nil
}

// sizeRank orders sizes: group 0 = recognized (numeric for footwear,
// canonical sequence for apparel), group 1 = unrecognized, which keep
// their encounter order. Half sizes sort between whole sizes.
func sizeRank(size string, footwear bool, seen int) (group int, num float64, canon int) {
	s := strings.ToUpper(strings.TrimSpace(size))
	if footwear {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return 0, f, 0
		}
		return 1, 0, seen
	}
	if idx, ok := apparelSizeOrder[s]; ok {
		return 0, 0, idx
	}
	return 1, 0, seen
}
