package service

import (
	"regexp"
	"strings"

	"merch-service/internal/merch/model"
)

var titleSplitRe = regexp.MustCompile(`[\s/]+`)

// TitleNormalizer expands distributor abbreviations into display titles.
type TitleNormalizer struct {
	maps *ConfigMaps
}

func NewTitleNormalizer(maps *ConfigMaps) *TitleNormalizer {
	return &TitleNormalizer{maps: maps}
}

// Normalize expands abbreviations (scope=start only on the first token),
// drops the distributor's "Ln" line-qualifier tokens, and drops a
// leftover brand abbreviation once the full brand name is present.
// Idempotent: normalizing an already-normalized title is a no-op, and
// unmapped tokens pass through unchanged.
func (n *TitleNormalizer) Normalize(titleRaw, styleCode, brandHint string) model.NormalizedTitle {
	raw := strings.TrimSpace(titleRaw)
	if raw == "" {
		return model.NormalizedTitle{}
	}

	in := titleSplitRe.Split(raw, -1)
	tokens := make([]string, 0, len(in))
	for i, tok := range in {
		if tok == "" {
			continue
		}
		// "Ln" is line-qualifier noise wherever it appears
		if strings.EqualFold(tok, "ln") {
			continue
		}
		key := strings.ToUpper(tok)
		if i == 0 {
			if ph, ok := n.maps.AbbrStart[key]; ok {
				tokens = append(tokens, strings.Fields(ph)...)
				continue
			}
		}
		if ph, ok := n.maps.AbbrAny[key]; ok {
			tokens = append(tokens, strings.Fields(ph)...)
			continue
		}
		tokens = append(tokens, tok)
	}

	tokens = dedupeBrand(tokens, brandHint)

	return model.NormalizedTitle{
		Title:  strings.Join(tokens, " "),
		Tokens: tokens,
	}
}

// dedupeBrand removes a stray "Nk" token when the expanded brand name is
// already in the title, and collapses immediate brand repeats.
func dedupeBrand(tokens []string, brand string) []string {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return tokens
	}
	hasBrand := false
	for _, t := range tokens {
		if strings.EqualFold(t, brand) {
			hasBrand = true
			break
		}
	}
	if !hasBrand {
		return tokens
	}
	out := tokens[:0]
	for _, t := range tokens {
		if strings.EqualFold(t, "nk") {
			continue
		}
		if len(out) > 0 && strings.EqualFold(t, brand) && strings.EqualFold(out[len(out)-1], brand) {
			continue
		}
		out = append(out, t)
	}
	return out
}
