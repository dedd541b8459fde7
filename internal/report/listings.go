package report

import (
	"io"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"merch-service/internal/merch/model"
)

var productHeader = []string{
	"Style Code", "Title", "Handle", "Vendor", "Product Type", "Tags",
	"Collections", "Body HTML", "Season", "MSRP", "Total Inventory",
}

var variantHeader = []string{
	"Style Code", "Variant SKU", "Option1 Value", "Option2 Value",
	"Variant Price", "Cost per item", "Variant Inventory Qty", "Tags",
}

// WriteListingsDraft writes the assembled products to a two-sheet
// workbook: "Products" (one row per style) and "Variants" (one row per
// color/size), in assembly order.
func WriteListingsDraft(w io.Writer, products []model.ProductRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const prodSheet = "Products"
	const varSheet = "Variants"
	f.SetSheetName(f.GetSheetName(0), prodSheet)
	if _, err := f.NewSheet(varSheet); err != nil {
		return err
	}

	if err := writeRow(f, prodSheet, 1, toAny(productHeader)); err != nil {
		return err
	}
	if err := writeRow(f, varSheet, 1, toAny(variantHeader)); err != nil {
		return err
	}

	vrow := 2
	for i, p := range products {
		row := []any{
			p.StyleCode, p.Title, p.Handle, p.Vendor, p.ProductType,
			strings.Join(p.Tags, ", "), strings.Join(p.Collections, "; "),
			p.BodyHTML, p.Season, formatMoney(p.MSRP), p.TotalInventory,
		}
		if err := writeRow(f, prodSheet, i+2, row); err != nil {
			return err
		}
		for _, v := range p.Variants {
			vr := []any{
				v.StyleCode, v.SKU, v.ColorName, v.Size,
				formatMoney(v.Price), formatMoney(v.Cost), v.Quantity,
				strings.Join(v.Tags, ", "),
			}
			if err := writeRow(f, varSheet, vrow, vr); err != nil {
				return err
			}
			vrow++
		}
	}
	return f.Write(w)
}
