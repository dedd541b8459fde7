package fileio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadAnyMapsCSV(t *testing.T) {
	in := "Style,Qty,Note\nBV0217,3,first\n,,\nCW9999,5,\n"
	rows, err := ReadAnyMaps(strings.NewReader(in), "feed.csv", 1)
	require.NoError(t, err)

	// the fully empty line is dropped
	require.Len(t, rows, 2)
	require.Equal(t, "BV0217", rows[0]["Style"])
	require.Equal(t, "3", rows[0]["Qty"])
	require.Equal(t, "CW9999", rows[1]["Style"])
	require.Equal(t, "", rows[1]["Note"])
}

func TestReadAnyMapsCSVHeaderRow(t *testing.T) {
	in := "Distributor Export\nStyle,Qty\nBV0217,3\n"
	rows, err := ReadAnyMaps(strings.NewReader(in), "feed.csv", 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "BV0217", rows[0]["Style"])
}

func TestReadAnyMapsBlankHeaderGetsColumnName(t *testing.T) {
	in := "Style,,Qty\nBV0217,x,3\n"
	rows, err := ReadAnyMaps(strings.NewReader(in), "feed.csv", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "x", rows[0]["Column 2"])
}

func TestReadAnyMapsUnsupportedExtension(t *testing.T) {
	_, err := ReadAnyMaps(strings.NewReader("x"), "feed.pdf", 1)
	require.Error(t, err)
}
