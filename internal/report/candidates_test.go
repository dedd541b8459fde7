package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"merch-service/internal/merch/model"
)

func TestWriteCandidates(t *testing.T) {
	candidates := []model.CandidateScore{
		{StyleCode: "CW9999", ColorCode: "100", Score: 2.0, Reasons: []string{"new_style", "qty_available"}, TotalInventory: 50, SizeSpread: model.SpreadBalanced},
		{StyleCode: "BV0217", ColorCode: "010", Score: 1.5, Reasons: []string{"new_color"}, TitleRaw: "W Club Tee", SizeSpread: model.SpreadSkewed},
	}
	listed := []model.StyleColorKey{{Style: "BV0217", Color: "382"}}

	var buf bytes.Buffer
	require.NoError(t, WriteCandidates(&buf, candidates, listed))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"New Candidates", "Already Listed"}, f.GetSheetList())

	rows, err := f.GetRows("New Candidates")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Style Code", rows[0][0])
	require.Equal(t, "CW9999", rows[1][0])
	require.Equal(t, "new_style, qty_available", rows[1][3])
	require.Equal(t, "Size Spread", rows[0][8])
	require.Equal(t, "Balanced", rows[1][8])
	require.Equal(t, "BV0217", rows[2][0])

	lrows, err := f.GetRows("Already Listed")
	require.NoError(t, err)
	require.Len(t, lrows, 2)
	require.Equal(t, []string{"BV0217", "382"}, lrows[1])
}

func TestWriteListingsDraft(t *testing.T) {
	products := []model.ProductRecord{{
		StyleCode: "CV4732", Title: "Women's Victory Skirt", Handle: "women-s-victory-skirt",
		Vendor: "Nike", ProductType: "Shorts & Skirts",
		Tags:        []string{"Nike", "CV4732", "Special Order"},
		Collections: []string{"Nike", "Women's Apparel"},
		Season:      "SU25", MSRP: 70, TotalInventory: 9,
		Variants: []model.VariantRecord{
			{StyleCode: "CV4732", SKU: "CV4732-382-S", ColorName: "Teal Blast", Size: "S", Price: 65, Cost: 30, Quantity: 3},
			{StyleCode: "CV4732", SKU: "CV4732-382-M", ColorName: "Teal Blast", Size: "M", Price: 65, Cost: 30, Quantity: 4},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteListingsDraft(&buf, products))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"Products", "Variants"}, f.GetSheetList())

	prows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, prows, 2)
	require.Equal(t, "CV4732", prows[1][0])
	require.Equal(t, "Nike, CV4732, Special Order", prows[1][5])

	vrows, err := f.GetRows("Variants")
	require.NoError(t, err)
	require.Len(t, vrows, 3)
	require.Equal(t, "CV4732-382-S", vrows[1][1])
	require.Equal(t, "CV4732-382-M", vrows[2][1])
}
