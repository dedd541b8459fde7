package service

import (
	"sort"
	"strings"

	"merch-service/internal/merch/model"
)

// CandidateMatcher diffs the distributor catalog against the store
// snapshot and scores what is not listed yet. Scores are advisory, for
// human sorting of the review sheet — not an accept/reject threshold.
type CandidateMatcher struct {
	opt model.MatchOptions
}

func NewCandidateMatcher(opt model.MatchOptions) *CandidateMatcher {
	if opt.StockCap <= 0 {
		opt.StockCap = model.DefaultMatchOptions().StockCap
	}
	return &CandidateMatcher{opt: opt}
}

// Match emits one candidate per distributor (style, color) pair absent
// from the store's SKU set, ranked by score descending; ties break by
// style then color ascending so reports are reproducible run to run.
func (m *CandidateMatcher) Match(dist *model.Catalog, store *model.StoreSnapshot) []model.CandidateScore {
	candidates, _ := m.Partition(dist, store)
	return candidates
}

// Partition additionally returns the pairs skipped as already listed, in
// feed order, for the review sheet.
func (m *CandidateMatcher) Partition(dist *model.Catalog, store *model.StoreSnapshot) ([]model.CandidateScore, []model.StyleColorKey) {
	var out []model.CandidateScore
	var listed []model.StyleColorKey
	for _, key := range dist.Keys() {
		if m.listed(dist, store, key) {
			listed = append(listed, key)
			continue
		}
		rows := dist.Rows(key)
		qty := dist.TotalQuantity(key)
		season := dist.Season(key)

		reasons := []string{model.ReasonNewColor}
		if !store.HasStyle(key.Style) {
			reasons = []string{model.ReasonNewStyle}
		}
		score := m.opt.NoveltyWeight

		if qty > 0 {
			reasons = append(reasons, model.ReasonQtyAvail)
			capped := qty
			if capped > m.opt.StockCap {
				capped = m.opt.StockCap
			}
			score += m.opt.StockWeight * float64(capped) / float64(m.opt.StockCap)
		}
		if season != "" && strings.EqualFold(season, strings.TrimSpace(m.opt.CurrentSeason)) {
			reasons = append(reasons, model.ReasonSeasonMatch)
			score += m.opt.SeasonWeight
		}

		cand := model.CandidateScore{
			StyleCode:      key.Style,
			ColorCode:      key.Color,
			Score:          score,
			Reasons:        reasons,
			Season:         season,
			TotalInventory: qty,
			SizeSpread:     sizeSpread(rows),
		}
		if len(rows) > 0 {
			cand.TitleRaw = rows[0].TitleRaw
			cand.ColorNameRaw = rows[0].ColorNameRaw
		}
		out = append(out, cand)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].StyleCode != out[j].StyleCode {
			return out[i].StyleCode < out[j].StyleCode
		}
		return out[i].ColorCode < out[j].ColorCode
	})
	return out, listed
}

// sizeSpread labels how evenly the colorway's stock sits across its sizes:
// a colorway with depth in every size is a safer listing bet than one whose
// stock is piled into a single size. Score = (1 - top/total)*100 over the
// per-size positive quantities; Balanced >= 50, Mixed >= 25, else Skewed.
func sizeSpread(rows []model.DistributorRow) string {
	perSize := make(map[string]int)
	for _, r := range rows {
		if r.Quantity > 0 {
			perSize[strings.ToUpper(strings.TrimSpace(r.Size))] += r.Quantity
		}
	}
	total, top := 0, 0
	for _, q := range perSize {
		total += q
		if q > top {
			top = q
		}
	}
	if total == 0 {
		return model.SpreadSkewed
	}
	s := (1 - float64(top)/float64(total)) * 100
	switch {
	case s >= 50:
		return model.SpreadBalanced
	case s >= 25:
		return model.SpreadMixed
	default:
		return model.SpreadSkewed
	}
}

// listed reports whether the colorway is already represented in the store:
// either one of its distributor SKUs is listed, or an existing SKU carries
// the composed style-color prefix.
func (m *CandidateMatcher) listed(dist *model.Catalog, store *model.StoreSnapshot, key model.StyleColorKey) bool {
	for _, r := range dist.Rows(key) {
		if r.SKU != "" && store.HasSKU(r.SKU) {
			return true
		}
	}
	return store.HasStyleColor(key.Style, key.Color)
}
