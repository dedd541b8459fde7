package service

import (
	"strings"

	"merch-service/internal/merch/model"
)

// NeedsCategory is the sentinel tag for titles no category keyword matched.
// It is carried into the output so a human classifies the item; it is never
// silently dropped.
const NeedsCategory = "Needs Category"

// SpecialOrderTag marks distributor-sourced listings.
const SpecialOrderTag = "Special Order"

// TagResolution is the outcome of classifying one style.
type TagResolution struct {
	ProductType string
	CategoryTag string
	TopLevelTag string
	Collection  string // top-level collection entry; Headwear remaps to Accessories
	Department  model.Department
	Gender      model.Gender
	Tags        *model.TagSet
}

// TagCategoryResolver derives product type, category and top-level tags
// from a normalized title plus style metadata.
type TagCategoryResolver struct {
	maps  *ConfigMaps
	brand string
}

func NewTagCategoryResolver(maps *ConfigMaps, brand string) *TagCategoryResolver {
	return &TagCategoryResolver{maps: maps, brand: brand}
}

func (r *TagCategoryResolver) Resolve(title model.NormalizedTitle, styleCode string, gender model.Gender, dept model.Department, season string) TagResolution {
	lower := strings.ToLower(title.Title)

	if gender == model.GenderUnknown {
		gender = detectGender(lower)
	}
	if dept == model.DeptUnknown {
		dept = detectDepartment(lower)
	}

	productType := r.resolveProductType(lower)
	category := r.resolveCategory(lower, gender)
	topLevel := topLevelTag(gender, dept)

	tags := model.NewTagSet()
	tags.Add(r.brand)
	tags.Add(model.NormalizeStyleCode(styleCode))
	tags.Add(SpecialOrderTag)
	tags.Add(category)
	tags.Add(topLevel)
	tags.Add(strings.TrimSpace(season))

	collection := topLevel
	if dept == model.DeptHeadwear {
		collection = "Accessories"
	}

	return TagResolution{
		ProductType: productType,
		CategoryTag: category,
		TopLevelTag: topLevel,
		Collection:  collection,
		Department:  dept,
		Gender:      gender,
		Tags:        tags,
	}
}

// resolveProductType scans the rule list, which is pre-sorted so the first
// substring hit is the winner (lowest priority value, then longest keyword).
// No hit leaves the type unset; it is never fabricated.
func (r *TagCategoryResolver) resolveProductType(lowerTitle string) string {
	for _, rule := range r.maps.TypeRules {
		if strings.Contains(lowerTitle, rule.Keyword) {
			return rule.ProductType
		}
	}
	return ""
}

// resolveCategory picks the longest matching keyword; ties go to the rule
// listed first. Women's shorts reclassify to Shorts & Skirts.
func (r *TagCategoryResolver) resolveCategory(lowerTitle string, gender model.Gender) string {
	best := ""
	bestLen := -1
	for _, rule := range r.maps.CategoryRules {
		if len(rule.Keyword) > bestLen && strings.Contains(lowerTitle, rule.Keyword) {
			best = rule.Category
			bestLen = len(rule.Keyword)
		}
	}
	if best == "" {
		return NeedsCategory
	}
	if best == "Shorts" && gender == model.GenderWomen {
		return "Shorts & Skirts"
	}
	return best
}

func topLevelTag(gender model.Gender, dept model.Department) string {
	switch dept {
	case model.DeptFootwear:
		switch gender {
		case model.GenderMen:
			return "Men's Footwear"
		case model.GenderWomen:
			return "Women's Footwear"
		default:
			return "Kid's Footwear"
		}
	case model.DeptHeadwear:
		// the tag keeps the literal department; only the collection remaps
		return "Headwear"
	case model.DeptApparel:
		switch gender {
		case model.GenderWomen:
			return "Women's Apparel"
		case model.GenderMen:
			return "Men's Apparel"
		case model.GenderGirls:
			return "Girl's Apparel"
		case model.GenderBoys, model.GenderKids:
			return "Boy's Apparel"
		}
	}
	return "Accessories"
}

func detectGender(lowerTitle string) model.Gender {
	switch {
	case containsAny(lowerTitle, "girl's", "girls", "girl"):
		return model.GenderGirls
	case containsAny(lowerTitle, "boy's", "boys", "boy"):
		return model.GenderBoys
	case containsAny(lowerTitle, "women's", "womens", "women", "ladies"):
		return model.GenderWomen
	case containsAny(lowerTitle, "men's", "mens", "men"):
		return model.GenderMen
	case containsAny(lowerTitle, "junior", "youth", "kids", "kid", "child"):
		return model.GenderKids
	}
	return model.GenderUnknown
}

func detectDepartment(lowerTitle string) model.Department {
	switch {
	case containsAny(lowerTitle, "shoe", "sneaker", "footwear"):
		return model.DeptFootwear
	case containsAny(lowerTitle, "cap", "hat", "visor", "beanie", "bucket", "snapback"):
		return model.DeptHeadwear
	}
	return model.DeptApparel
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
