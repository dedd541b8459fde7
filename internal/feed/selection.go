package feed

import (
	"errors"
	"strings"

	"merch-service/internal/merch/model"
)

// ParseSelection reads reviewed (style, color) picks. Accepts either
// [style_code, color_code] columns or a single [style_color] column with
// "BV0217-382" values; codes are normalized the same way as feed rows.
func ParseSelection(records []map[string]string) ([]model.Selection, error) {
	if len(records) == 0 {
		return nil, nil
	}

	var out []model.Selection
	switch {
	case hasKeys(records[0], "style_code", "color_code"):
		for _, rec := range records {
			sc := model.NormalizeStyleCode(rec["style_code"])
			cc := model.NormalizeColorCode(rec["color_code"])
			if sc != "" && cc != "" {
				out = append(out, model.Selection{StyleCode: sc, ColorCode: cc})
			}
		}
	case hasKeys(records[0], "style_color"):
		for _, rec := range records {
			if sel, ok := splitSelection(rec["style_color"]); ok {
				out = append(out, sel)
			}
		}
	default:
		return nil, errors.New("selection must have columns [style_code,color_code] or [style_color]")
	}
	return out, nil
}

// ParseSelectionCodes accepts bare "STYLE-COLOR" strings (query params,
// one-per-line files).
func ParseSelectionCodes(codes []string) []model.Selection {
	var out []model.Selection
	for _, c := range codes {
		if sel, ok := splitSelection(c); ok {
			out = append(out, sel)
		}
	}
	return out
}

func splitSelection(v string) (model.Selection, bool) {
	v = strings.TrimSpace(v)
	i := strings.Index(v, "-")
	if i <= 0 || i == len(v)-1 {
		return model.Selection{}, false
	}
	sc := model.NormalizeStyleCode(v[:i])
	cc := model.NormalizeColorCode(v[i+1:])
	if sc == "" || cc == "" {
		return model.Selection{}, false
	}
	return model.Selection{StyleCode: sc, ColorCode: cc}, true
}

func hasKeys(rec map[string]string, keys ...string) bool {
	for _, k := range keys {
		if _, ok := rec[k]; !ok {
			return false
		}
	}
	return true
}
