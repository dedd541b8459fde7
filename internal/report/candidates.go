// Package report renders review workbooks with excelize. The engine owns
// field semantics; this package only owns sheet and column layout.
package report

import (
	"fmt"
	"io"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"merch-service/internal/merch/model"
)

var candidateHeader = []string{
	"Style Code", "Color Code", "Score", "Reasons",
	"Title", "Color Name", "Season", "Total Inventory", "Size Spread",
}

// WriteCandidates writes the ranked candidates to a "New Candidates" sheet
// preserving the matcher's ordering, plus an "Already Listed" sheet with
// the pairs that were skipped.
func WriteCandidates(w io.Writer, candidates []model.CandidateScore, listed []model.StyleColorKey) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "New Candidates"
	const listedSheet = "Already Listed"
	f.SetSheetName(f.GetSheetName(0), sheet)
	if _, err := f.NewSheet(listedSheet); err != nil {
		return err
	}

	if err := writeRow(f, sheet, 1, toAny(candidateHeader)); err != nil {
		return err
	}
	for i, c := range candidates {
		row := []any{
			c.StyleCode, c.ColorCode, c.Score, strings.Join(c.Reasons, ", "),
			c.TitleRaw, c.ColorNameRaw, c.Season, c.TotalInventory, c.SizeSpread,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, listedSheet, 1, []any{"Style Code", "Color Code"}); err != nil {
		return err
	}
	for i, k := range listed {
		if err := writeRow(f, listedSheet, i+2, []any{k.Style, k.Color}); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func formatMoney(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}
