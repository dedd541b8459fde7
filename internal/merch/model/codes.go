package model

import (
	"regexp"
	"strings"
)

var colorAlphaRe = regexp.MustCompile(`^(\d{1,3})([A-Za-z]+)$`)

// NormalizeStyleCode upper-cases and trims a style code.
func NormalizeStyleCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeColorCode returns the fixed-width form of a color code:
// "10" → "010", "10a" → "010A". Codes stay strings end to end — numeric
// coercion would lose leading zeros and merge distinct colorways.
func NormalizeColorCode(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isDigits(s) {
		return zfill(s, 3)
	}
	if m := colorAlphaRe.FindStringSubmatch(s); m != nil {
		return zfill(m[1], 3) + strings.ToUpper(m[2])
	}
	return strings.ToUpper(s)
}

var shoeSizeRe = regexp.MustCompile(`^[MW]\s*(\d{1,2}(?:\.\d)?)$`)

// Long-form and vendor-specific size spellings, folded to the canonical
// 2XS…5XL sequence.
var sizeAliases = map[string]string{
	"XX SMALL": "2XS", "XXS": "2XS",
	"X SMALL": "XS", "EXTRA SMALL": "XS",
	"SMALL": "S", "MEDIUM": "M", "LARGE": "L",
	"X LARGE": "XL", "EXTRA LARGE": "XL",
	"XX LARGE": "2XL", "XXX LARGE": "3XL",
	"XXL": "2XL", "XXXL": "3XL", "XXXXL": "4XL",
	"2X": "2XL", "3X": "3XL", "4X": "4XL",
}

// Leading gender qualifiers the distributor prepends to size tokens,
// e.g. "WOMENS XL" or "M L".
var sizePrefixTokens = map[string]struct{}{
	"WOMEN": {}, "WOMENS": {}, "WOMEN'S": {},
	"MEN": {}, "MENS": {}, "MEN'S": {},
	"BOYS": {}, "GIRLS": {}, "YOUTH": {}, "KIDS": {},
	"M": {}, "W": {}, "G": {}, "B": {}, "YTH": {}, "K": {},
}

// NormalizeSize canonicalizes a distributor size token. Footwear sizes
// shed their M/W prefix and keep the numeric part ("M 9.5" → "9.5");
// apparel long forms fold to the canonical sequence ("XX LARGE" → "2XL")
// and a leading gender qualifier is dropped when more follows
// ("WOMENS XL" → "XL", but a bare "M" stays Medium). Unrecognized tokens
// pass through upper-cased and space-collapsed, never dropped.
func NormalizeSize(s string, footwear bool) string {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "" {
		return ""
	}
	if footwear {
		if m := shoeSizeRe.FindStringSubmatch(upper); m != nil {
			return m[1]
		}
	}
	tokens := strings.FieldsFunc(strings.ReplaceAll(upper, "-", " "), func(r rune) bool {
		return r == ' ' || r == '/'
	})
	canon := strings.Join(tokens, " ")
	if v, ok := sizeAliases[canon]; ok {
		return v
	}
	if len(tokens) > 1 {
		if _, ok := sizePrefixTokens[tokens[0]]; ok {
			rest := strings.Join(tokens[1:], " ")
			if v, ok := sizeAliases[rest]; ok {
				return v
			}
			return rest
		}
	}
	return canon
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func zfill(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
