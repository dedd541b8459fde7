// Package feed parses distributor (NuOrder) catalog exports into the
// engine's row model. Input arrives as map[header]value records from
// fileio; all field access goes through the distributor's column names.
package feed

import (
	"regexp"
	"strings"

	"merch-service/internal/merch/model"
	"merch-service/internal/utils"
)

// NuOrder export column names.
const (
	ColHandle = "Handle"
	ColTitle  = "Title"
	ColVendor = "Vendor"
	ColType   = "Type"
	ColSize   = "Option1 Value"
	ColColor  = "Option2 Value"
	ColSKU    = "Variant SKU"
	ColQty    = "Variant Inventory Qty"
	ColPrice  = "Variant Price"
	ColMSRP   = "Variant Compare At Price"
	ColCost   = "Cost per item"
	ColStyle  = "Other - Style Number" // e.g. BV0217-382 (style-color)
	ColSeason = "Other - Season"
)

// styleColorRe matches the distributor's combined style-color number.
var styleColorRe = regexp.MustCompile(`([A-Z]{2}\d{4})-(\d{1,3})`)

// Result carries parsed rows plus per-row data errors. A malformed row is
// excluded and reported; it never fails the batch.
type Result struct {
	Rows   []model.DistributorRow
	Errors []model.DataError
}

// Parse converts raw records into DistributorRows. When vendors is
// non-empty, rows from other vendors are dropped silently (the feed mixes
// brands; only the configured vendor lines are ours to list).
func Parse(records []map[string]string, vendors []string) Result {
	vendorSet := make(map[string]struct{}, len(vendors))
	for _, v := range vendors {
		if v = strings.TrimSpace(v); v != "" {
			vendorSet[v] = struct{}{}
		}
	}

	var res Result
	for i, rec := range records {
		line := i + 2 // 1-based, after the header row
		vendor := strings.TrimSpace(rec[ColVendor])
		if len(vendorSet) > 0 {
			if _, ok := vendorSet[vendor]; !ok {
				continue
			}
		}

		style, color := SplitStyleColor(rec[ColStyle])
		if style == "" {
			style, color = SplitStyleColor(rec[ColHandle])
		}
		if style == "" || color == "" {
			res.Errors = append(res.Errors, model.DataError{
				Line:   line,
				Reason: "no parsable style-color number",
			})
			continue
		}

		qty, _ := utils.ParseNumber(rec[ColQty])
		if qty < 0 {
			qty = 0
		}
		price, ok := utils.ParseNumber(rec[ColPrice])
		if !ok {
			price, _ = utils.ParseNumber(rec[ColMSRP])
		}
		cost, _ := utils.ParseNumber(rec[ColCost])

		res.Rows = append(res.Rows, model.DistributorRow{
			StyleCode:    style,
			ColorCode:    color,
			ColorNameRaw: strings.TrimSpace(rec[ColColor]),
			Size:         strings.TrimSpace(rec[ColSize]),
			SKU:          strings.TrimSpace(rec[ColSKU]),
			Price:        price,
			Cost:         cost,
			Quantity:     int(qty),
			TitleRaw:     strings.TrimSpace(rec[ColTitle]),
			Vendor:       vendor,
			Type:         strings.TrimSpace(rec[ColType]),
			Department:   departmentOf(rec[ColType]),
			Season:       strings.TrimSpace(rec[ColSeason]),
		})
	}
	return res
}

// SplitStyleColor extracts and normalizes the (style, color) pair from a
// combined value like "BV0217-382". Returns empty strings when absent.
func SplitStyleColor(v string) (style, color string) {
	m := styleColorRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(v)))
	if m == nil {
		return "", ""
	}
	return model.NormalizeStyleCode(m[1]), model.NormalizeColorCode(m[2])
}

// departmentOf reads the distributor's type label, e.g.
// "NIKE - Golf : Shoes". Unknown stays unknown; the tag resolver falls
// back to title detection.
func departmentOf(typ string) model.Department {
	t := strings.ToLower(typ)
	switch {
	case strings.Contains(t, "shoe"), strings.Contains(t, "footwear"):
		return model.DeptFootwear
	case strings.Contains(t, "headwear"), strings.Contains(t, "hat"), strings.Contains(t, "cap"):
		return model.DeptHeadwear
	case strings.Contains(t, "apparel"):
		return model.DeptApparel
	}
	return model.DeptUnknown
}
