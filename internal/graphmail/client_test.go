package graphmail

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func zipWith(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	data := zipWith(t, map[string]string{
		"readme.txt":           "ignore me",
		"export/inventory.csv": "Handle,Title\nx,y\n",
	})

	path, err := extractSpreadsheet(data, dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "inventory.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Handle,Title\nx,y\n", string(content))
}

func TestExtractSpreadsheetNoMatch(t *testing.T) {
	data := zipWith(t, map[string]string{"readme.txt": "nope"})
	_, err := extractSpreadsheet(data, t.TempDir())
	require.Error(t, err)
}

func TestExtractSpreadsheetBadArchive(t *testing.T) {
	_, err := extractSpreadsheet([]byte("not a zip"), t.TempDir())
	require.Error(t, err)
}
