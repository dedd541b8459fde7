package feed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"merch-service/internal/merch/model"
)

func TestParseSelectionTwoColumns(t *testing.T) {
	records := []map[string]string{
		{"style_code": "bv0217", "color_code": "10"},
		{"style_code": "CV4732", "color_code": "382"},
		{"style_code": "", "color_code": "100"}, // incomplete, skipped
	}
	got, err := ParseSelection(records)
	require.NoError(t, err)
	require.Equal(t, []model.Selection{
		{StyleCode: "BV0217", ColorCode: "010"},
		{StyleCode: "CV4732", ColorCode: "382"},
	}, got)
}

func TestParseSelectionCombinedColumn(t *testing.T) {
	records := []map[string]string{
		{"style_color": "BV0217-382"},
		{"style_color": "cv4732-10"},
	}
	got, err := ParseSelection(records)
	require.NoError(t, err)
	require.Equal(t, []model.Selection{
		{StyleCode: "BV0217", ColorCode: "382"},
		{StyleCode: "CV4732", ColorCode: "010"},
	}, got)
}

func TestParseSelectionUnknownColumns(t *testing.T) {
	_, err := ParseSelection([]map[string]string{{"sku": "x"}})
	require.Error(t, err)
}

func TestParseSelectionEmpty(t *testing.T) {
	got, err := ParseSelection(nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestParseSelectionCodes(t *testing.T) {
	got := ParseSelectionCodes([]string{"BV0217-382", " cv4732-10 ", "garbage", ""})
	require.Equal(t, []model.Selection{
		{StyleCode: "BV0217", ColorCode: "382"},
		{StyleCode: "CV4732", ColorCode: "010"},
	}, got)
}
