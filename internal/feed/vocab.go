package feed

import (
	"sort"

	"merch-service/internal/merch/model"
)

// ColorCount is one distinct raw color name seen in the feed, for curating
// the color-code map.
type ColorCount struct {
	RawColor     string   `json:"raw_color"`
	Count        int      `json:"count"`
	SampleStyles []string `json:"sample_styles"` // up to 5, sorted
}

// ColorVocab lists the distinct raw color names with occurrence counts and
// sample style codes, sorted by color name.
func ColorVocab(rows []model.DistributorRow) []ColorCount {
	counts := map[string]int{}
	styles := map[string]map[string]struct{}{}
	for _, r := range rows {
		if r.ColorNameRaw == "" {
			continue
		}
		counts[r.ColorNameRaw]++
		if styles[r.ColorNameRaw] == nil {
			styles[r.ColorNameRaw] = map[string]struct{}{}
		}
		styles[r.ColorNameRaw][r.StyleCode] = struct{}{}
	}

	out := make([]ColorCount, 0, len(counts))
	for color, n := range counts {
		var ss []string
		for s := range styles[color] {
			ss = append(ss, s)
		}
		sort.Strings(ss)
		if len(ss) > 5 {
			ss = ss[:5]
		}
		out = append(out, ColorCount{RawColor: color, Count: n, SampleStyles: ss})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RawColor < out[j].RawColor })
	return out
}
