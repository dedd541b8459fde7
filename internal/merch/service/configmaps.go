package service

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"merch-service/internal/fileio"
	"merch-service/internal/merch/model"
)

// TypeRule maps a title keyword to a product type. Lower priority value
// wins; ties go to the longer keyword.
type TypeRule struct {
	Keyword     string
	ProductType string
	Priority    int
}

// CategoryRule maps a title keyword to a category tag.
type CategoryRule struct {
	Keyword  string
	Category string
}

// ConfigMaps holds the four lookup tables, loaded once per run and shared
// read-only across the whole pass.
type ConfigMaps struct {
	AbbrStart     map[string]string // keyed by upper-cased abbreviation, scope=start
	AbbrAny       map[string]string // scope=any
	TypeRules     []TypeRule        // sorted: priority asc, keyword length desc, keyword asc
	CategoryRules []CategoryRule
	ColorCodes    map[string]string // keyed by fixed-width color code
}

// LoadConfigMaps reads the four CSVs. A missing file falls back to the
// built-in defaults for that table; a completely empty result is fatal.
func LoadConfigMaps(abbrPath, typePath, categoryPath, colorPath string) (*ConfigMaps, error) {
	m := &ConfigMaps{
		AbbrStart:  map[string]string{},
		AbbrAny:    map[string]string{},
		ColorCodes: map[string]string{},
	}

	if rows, ok := readCSVMaps(abbrPath); ok {
		for _, rec := range rows {
			ab := strings.ToUpper(strings.TrimSpace(rec["abbr"]))
			ph := strings.TrimSpace(rec["phrase"])
			if ab == "" || ph == "" {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(rec["scope"]), "start") {
				m.AbbrStart[ab] = ph
			} else {
				m.AbbrAny[ab] = ph
			}
		}
	} else {
		m.AbbrStart = defaultAbbrStart()
		m.AbbrAny = defaultAbbrAny()
	}

	if rows, ok := readCSVMaps(typePath); ok {
		for _, rec := range rows {
			kw := strings.ToLower(strings.TrimSpace(rec["keyword"]))
			pt := strings.TrimSpace(rec["product_type"])
			if kw == "" || pt == "" {
				continue
			}
			pr, _ := strconv.Atoi(strings.TrimSpace(rec["priority"]))
			m.TypeRules = append(m.TypeRules, TypeRule{Keyword: kw, ProductType: pt, Priority: pr})
		}
	} else {
		m.TypeRules = defaultTypeRules()
	}
	sortTypeRules(m.TypeRules)

	if rows, ok := readCSVMaps(categoryPath); ok {
		for _, rec := range rows {
			kw := strings.ToLower(strings.TrimSpace(rec["keyword"]))
			cat := strings.TrimSpace(rec["category"])
			if kw == "" || cat == "" {
				continue
			}
			m.CategoryRules = append(m.CategoryRules, CategoryRule{Keyword: kw, Category: cat})
		}
	} else {
		m.CategoryRules = defaultCategoryRules()
	}

	if rows, ok := readCSVMaps(colorPath); ok {
		for _, rec := range rows {
			cc := model.NormalizeColorCode(rec["color_code"])
			name := strings.TrimSpace(rec["color_name"])
			if cc == "" || name == "" {
				continue
			}
			m.ColorCodes[cc] = name
		}
	} else {
		m.ColorCodes = defaultColorCodes()
	}

	if len(m.AbbrStart) == 0 && len(m.AbbrAny) == 0 && len(m.TypeRules) == 0 &&
		len(m.CategoryRules) == 0 && len(m.ColorCodes) == 0 {
		return nil, model.ErrEmptyConfig
	}
	return m, nil
}

func readCSVMaps(path string) ([]map[string]string, bool) {
	if path == "" {
		return nil, false
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()
	rows, err := fileio.ReadAnyMaps(f, path, 1)
	if err != nil || len(rows) == 0 {
		return nil, false
	}
	return rows, true
}

func sortTypeRules(rules []TypeRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		if len(rules[i].Keyword) != len(rules[j].Keyword) {
			return len(rules[i].Keyword) > len(rules[j].Keyword)
		}
		return rules[i].Keyword < rules[j].Keyword
	})
}

// Built-in defaults, carried from the curated distributor vocabularies.

func defaultAbbrStart() map[string]string {
	return map[string]string{
		"G":   "Girls",
		"B":   "Boys",
		"NK":  "Nike",
		"U":   "Unisex",
		"W":   "Women's",
		"M":   "Men's",
		"YTH": "Youth",
	}
}

func defaultAbbrAny() map[string]string {
	return map[string]string{
		"DF":      "Dri-FIT",
		"DFADV":   "Dri-FIT Advantage",
		"SS":      "Short Sleeve",
		"LS":      "Long Sleeve",
		"SL":      "Sleeveless",
		"PRT":     "Print",
		"VCTRY":   "Victory",
		"NVLTY":   "Novelty",
		"NXT":     "Next",
		"HERITGE": "Heritage",
		"ADVTG":   "Advantage",
		"PLTD":    "Pleated",
		"FLNCY":   "Flouncy",
		"PCKBL":   "Pickleball",
		"NP":      "Nike Pro",
		"TGT":     "Tight",
		"TGHT":    "Tight",
		"HTHR":    "Heather",
		"ESSNTL":  "Essential",
		"SWSH":    "Swoosh",
		"ARBL":    "Aerobill",
		"ELSTKA":  "Elastika",
		"CRP":     "Crop",
		"WVN":     "Woven",
		"FUT":     "Futura",
		"SNBK":    "Snapback",
		"RND":     "Round",
		"RFLTV":   "Reflective",
		"WSH":     "Wash",
		"STRTCH":  "Stretch",
		"DBLE":    "Double",
		"RTRO":    "Retro",
		"STRP":    "Stripe",
		"CB":      "Club",
		"HZ":      "Half Zip",
		"FZ":      "Full Zip",
		"TSHRT":   "T-Shirt",
		"SHRT":    "Short",
		"DRSS":    "Dress",
		"PRFMNC":  "Performance",
		"REG":     "Regular",
		"HC":      "Hard Court",
		"THRMFLX": "Therma Flex",
		"USO":     "US Open",
		"LTWT":    "Lightweight",
		"BKT":     "Bucket",
		"PRM":     "Premium",
	}
}

func defaultTypeRules() []TypeRule {
	return []TypeRule{
		{"polo", "T-Shirt & Tops", 10},
		{"sleeveless", "T-Shirt & Tops", 9},
		{"long sleeve", "T-Shirt & Tops", 9},
		{"jacket", "Jacket & Hoodies", 10},
		{"hoodie", "Jacket & Hoodies", 10},
		{"sock", "Socks", 10},
		{"pant", "Pant", 10},
		{"shorts", "Shorts", 10},
		{"dress", "Women's Dresses", 10},
		{"tight", "Leggings", 10},
		{"legging", "Leggings", 10},
		{"skirt", "Shorts & Skirts", 10},
		{"skort", "Shorts & Skirts", 10},
		{"cap", "Headwear", 10},
		{"hat", "Headwear", 10},
		{"beanie", "Headwear", 10},
		{"visor", "Headwear", 10},
		{"bucket", "Headwear", 10},
		{"shoe", "Shoes", 10},
		{"sneaker", "Shoes", 10},
	}
}

func defaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{"hoodie", "Jacket & Hoodies"},
		{"jacket", "Jacket & Hoodies"},
		{"fleece", "T-Shirt & Tops"},
		{"sweatshirt", "T-Shirt & Tops"},
		{"tank top", "T-Shirt & Tops"},
		{"tank", "T-Shirt & Tops"},
		{"top", "T-Shirt & Tops"},
		{"t-shirt", "T-Shirt & Tops"},
		{"shirt", "T-Shirt & Tops"},
		{"polo", "T-Shirt & Tops"},
		{"bra", "T-Shirt & Tops"},
		{"pants", "Pant"},
		{"pant", "Pant"},
		{"jogger", "Pant"},
		{"shorts", "Shorts"},
		{"skirt", "Skirts"},
		{"skort", "Skirts"},
		{"leggings", "Leggings"},
		{"tight", "Leggings"},
		{"dress", "Dress"},
		{"cap", "Headwear"},
		{"hat", "Headwear"},
		{"beanie", "Headwear"},
		{"visor", "Headwear"},
		{"sock", "Socks"},
		{"shoe", "Shoes"},
		{"sneaker", "Shoes"},
	}
}

func defaultColorCodes() map[string]string {
	return map[string]string{
		"010": "Black",
		"100": "White",
		"110": "Ivory",
		"361": "Green",
		"379": "Teal",
		"402": "Blue",
		"451": "Navy Blue",
		"464": "Light Blue",
		"489": "Blue",
		"507": "Purple",
		"580": "Light Purple",
		"629": "Hot Pink",
		"657": "Red",
	}
}
