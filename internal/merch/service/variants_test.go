package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"merch-service/internal/merch/model"
)

func testVariantBuilder(t *testing.T) *VariantBuilder {
	t.Helper()
	return NewVariantBuilder(NewColorResolver(testMaps(t)))
}

func row(style, color, size string, qty int, price float64) model.DistributorRow {
	return model.DistributorRow{
		StyleCode: style, ColorCode: color, Size: size,
		Quantity: qty, Price: price, ColorNameRaw: "Teal Blast",
	}
}

func TestBuildGroupsAndSumsDuplicates(t *testing.T) {
	b := testVariantBuilder(t)
	rows := []model.DistributorRow{
		row("BV0217", "382", "M", 3, 65),
		row("BV0217", "382", "M", 2, 65),
		row("BV0217", "382", "L", 1, 65),
	}
	got, err := b.Build("BV0217", rows, false, model.NewTagSet("Nike"), map[string]string{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "BV0217-382-M", got[0].SKU)
	require.Equal(t, 5, got[0].Quantity)
	require.Equal(t, "BV0217-382-L", got[1].SKU)
}

func TestBuildApparelSizeOrder(t *testing.T) {
	b := testVariantBuilder(t)
	rows := []model.DistributorRow{
		row("BV0217", "382", "2XL", 1, 65),
		row("BV0217", "382", "S", 1, 65),
		row("BV0217", "382", "L", 1, 65),
		row("BV0217", "382", "M", 1, 65),
	}
	got, err := b.Build("BV0217", rows, false, model.NewTagSet(), map[string]string{})
	require.NoError(t, err)

	sizes := make([]string, len(got))
	for i, v := range got {
		sizes[i] = v.Size
	}
	require.Equal(t, []string{"S", "M", "L", "2XL"}, sizes)
}

func TestBuildFootwearNumericOrder(t *testing.T) {
	b := testVariantBuilder(t)
	rows := []model.DistributorRow{
		row("DD1391", "100", "10", 1, 110),
		row("DD1391", "100", "7.5", 1, 110),
		row("DD1391", "100", "9", 1, 110),
	}
	got, err := b.Build("DD1391", rows, true, model.NewTagSet(), map[string]string{})
	require.NoError(t, err)

	sizes := make([]string, len(got))
	for i, v := range got {
		sizes[i] = v.Size
	}
	// numeric, not lexicographic: 10 sorts after 9
	require.Equal(t, []string{"7.5", "9", "10"}, sizes)
	require.Equal(t, "DD1391-100-9", got[1].SKU)
	require.Equal(t, "DD1391-100-10", got[2].SKU)
}

func TestBuildStripsGenderedFootwearSizes(t *testing.T) {
	b := testVariantBuilder(t)
	rows := []model.DistributorRow{
		row("DD1391", "100", "M 10", 1, 110),
		row("DD1391", "100", "M 7.5", 1, 110),
		row("DD1391", "100", "M 9", 1, 110),
	}
	got, err := b.Build("DD1391", rows, true, model.NewTagSet(), map[string]string{})
	require.NoError(t, err)

	sizes := make([]string, len(got))
	for i, v := range got {
		sizes[i] = v.Size
	}
	// prefixed sizes normalize to their numeric part and sort numerically
	require.Equal(t, []string{"7.5", "9", "10"}, sizes)
	require.Equal(t, "DD1391-100-10", got[2].SKU)
}

func TestBuildCanonicalizesLongFormApparelSizes(t *testing.T) {
	b := testVariantBuilder(t)
	rows := []model.DistributorRow{
		row("BV0217", "382", "XX LARGE", 1, 65),
		row("BV0217", "382", "SMALL", 1, 65),
		row("BV0217", "382", "2X", 1, 65), // duplicate of XX LARGE after folding
	}
	got, err := b.Build("BV0217", rows, false, model.NewTagSet(), map[string]string{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, "S", got[0].Size)
	require.Equal(t, "2XL", got[1].Size)
	require.Equal(t, "BV0217-382-2XL", got[1].SKU)
	require.Equal(t, 2, got[1].Quantity)
}

func TestBuildUnrecognizedSizesKeepEncounterOrderAfterKnown(t *testing.T) {
	b := testVariantBuilder(t)
	rows := []model.DistributorRow{
		row("BV0217", "382", "OSFM", 1, 25),
		row("BV0217", "382", "S", 1, 25),
		row("BV0217", "382", "TALL", 1, 25),
	}
	got, err := b.Build("BV0217", rows, false, model.NewTagSet(), map[string]string{})
	require.NoError(t, err)

	sizes := make([]string, len(got))
	for i, v := range got {
		sizes[i] = v.Size
	}
	require.Equal(t, []string{"S", "OSFM", "TALL"}, sizes)
}

func TestBuildSortsSameSizeByColorName(t *testing.T) {
	b := testVariantBuilder(t)
	rows := []model.DistributorRow{
		{StyleCode: "BV0217", ColorCode: "999", Size: "M", Quantity: 1, ColorNameRaw: "Volt"},
		{StyleCode: "BV0217", ColorCode: "010", Size: "M", Quantity: 1}, // maps to Black
	}
	got, err := b.Build("BV0217", rows, false, model.NewTagSet(), map[string]string{})
	require.NoError(t, err)
	require.Equal(t, []string{"Black", "Volt"}, []string{got[0].ColorName, got[1].ColorName})
}

func TestBuildNormalizesColorCodeInSKU(t *testing.T) {
	b := testVariantBuilder(t)
	rows := []model.DistributorRow{row("BV0217", "10", "M", 1, 65)}
	got, err := b.Build("bv0217", rows, false, model.NewTagSet(), map[string]string{})
	require.NoError(t, err)
	require.Equal(t, "BV0217-010-M", got[0].SKU)
}

func TestBuildCollisionAbortsWholeStyle(t *testing.T) {
	b := testVariantBuilder(t)
	rows := []model.DistributorRow{
		row("BV0217", "382", "S", 1, 65),
		row("BV0217", "382", "M", 1, 65),
	}
	emitted := map[string]string{"BV0217-382-M": "CV4732"}

	got, err := b.Build("BV0217", rows, false, model.NewTagSet(), emitted)
	require.Nil(t, got)

	var collision model.CollisionError
	require.ErrorAs(t, err, &collision)
	require.Equal(t, "sku", collision.Kind)
	require.Equal(t, "BV0217-382-M", collision.Value)
	require.Equal(t, "CV4732", collision.StyleCode)

	// nothing committed: the clean S variant must not leak into emitted
	require.Len(t, emitted, 1)
}
