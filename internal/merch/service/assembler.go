package service

import (
	"fmt"
	"regexp"
	"strings"

	"merch-service/internal/merch/model"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// ListingAssembler turns a reviewed selection of (style, color) pairs into
// store-ready ProductRecords. Pure and synchronous; the run-scoped SKU and
// handle sets are owned exclusively by one Assemble call.
type ListingAssembler struct {
	titles   *TitleNormalizer
	resolver *TagCategoryResolver
	variants *VariantBuilder
	brand    string
	vendor   string
}

func NewListingAssembler(maps *ConfigMaps, brand, vendor string) *ListingAssembler {
	colors := NewColorResolver(maps)
	return &ListingAssembler{
		titles:   NewTitleNormalizer(maps),
		resolver: NewTagCategoryResolver(maps, brand),
		variants: NewVariantBuilder(colors),
		brand:    brand,
		vendor:   vendor,
	}
}

// Assemble groups the selection by style, normalizes once per style, and
// expands variants across all selected colorways. Selections with no
// distributor rows are aggregated into NotFound; a SKU collision excludes
// that whole style via Excluded. Neither aborts the batch. store may be
// nil when no snapshot is available for title disambiguation.
func (a *ListingAssembler) Assemble(selection []model.Selection, dist *model.Catalog, store *model.StoreSnapshot) model.AssembleResult {
	res := model.AssembleResult{}

	// group found selections by style, preserving selection order
	styleOrder := []string{}
	styleKeys := map[string][]model.StyleColorKey{}
	seenPair := map[model.StyleColorKey]struct{}{}
	for _, sel := range selection {
		key := model.StyleColorKey{
			Style: model.NormalizeStyleCode(sel.StyleCode),
			Color: model.NormalizeColorCode(sel.ColorCode),
		}
		if _, dup := seenPair[key]; dup {
			continue
		}
		seenPair[key] = struct{}{}
		if len(dist.Rows(key)) == 0 {
			res.NotFound = append(res.NotFound, model.Selection{StyleCode: key.Style, ColorCode: key.Color})
			continue
		}
		if _, ok := styleKeys[key.Style]; !ok {
			styleOrder = append(styleOrder, key.Style)
		}
		styleKeys[key.Style] = append(styleKeys[key.Style], key)
	}

	emittedSKUs := map[string]string{}
	usedHandles := map[string]struct{}{}
	usedTitles := map[string]struct{}{}

	for _, style := range styleOrder {
		var rows []model.DistributorRow
		for _, key := range styleKeys[style] {
			rows = append(rows, dist.Rows(key)...)
		}
		first := rows[0]

		// title and tags are style-level, derived once
		norm := a.titles.Normalize(first.TitleRaw, style, a.brand)
		if norm.Title == "" {
			norm = model.NormalizedTitle{Title: style, Tokens: []string{style}}
		}
		season := firstSeason(rows)
		tr := a.resolver.Resolve(norm, style, first.Gender, first.Department, season)

		title := norm.Title
		if _, dup := usedTitles[title]; (dup || (store != nil && store.HasTitle(title))) && season != "" {
			title = title + " - " + season
		}
		usedTitles[title] = struct{}{}

		handle := uniqueHandle(slugify(title, style), usedHandles)

		variants, err := a.variants.Build(style, rows, tr.Department == model.DeptFootwear, tr.Tags, emittedSKUs)
		if err != nil {
			res.Excluded = append(res.Excluded, model.StyleFailure{StyleCode: style, Reason: err.Error()})
			continue
		}
		total := 0
		msrp := 0.0
		for _, v := range variants {
			emittedSKUs[v.SKU] = style
			total += v.Quantity
			if v.Price > msrp {
				msrp = v.Price
			}
		}

		res.Products = append(res.Products, model.ProductRecord{
			StyleCode:      style,
			Title:          title,
			Handle:         handle,
			Vendor:         a.vendor,
			ProductType:    tr.ProductType,
			Tags:           tr.Tags.Tags(),
			Collections:    []string{a.brand, tr.Collection},
			BodyHTML:       "Style: " + style,
			Season:         season,
			MSRP:           msrp,
			TotalInventory: total,
			Variants:       variants,
		})
	}
	return res
}

func firstSeason(rows []model.DistributorRow) string {
	for _, r := range rows {
		if s := strings.TrimSpace(r.Season); s != "" {
			return s
		}
	}
	return ""
}

// slugify lowercases and hyphenates a title into a URL-safe handle,
// falling back to the style code for titles with no slug material.
func slugify(title, style string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = strings.ToLower(style)
	}
	return s
}

// uniqueHandle suffixes a numeric counter when two styles in one run
// normalize to the same handle.
func uniqueHandle(base string, used map[string]struct{}) string {
	h := base
	for i := 2; ; i++ {
		if _, ok := used[h]; !ok {
			used[h] = struct{}{}
			return h
		}
		h = fmt.Sprintf("%s-%d", base, i)
	}
}
