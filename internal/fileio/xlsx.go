package fileio

import (
	"bytes"
	"errors"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

var errNoSheets = errors.New("fileio: workbook has no sheets")

// readXLSX reads the first sheet of a distributor workbook. NuOrder
// exports put the data on sheet one; any extra sheets are ignored.
func readXLSX(r io.Reader, headerRow int) ([]map[string]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	h := pickHeader(rows, headerRow)
	return rowsToMaps(rows, h, headerRow), nil
}
