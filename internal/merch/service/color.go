package service

import (
	"strings"

	"merch-service/internal/merch/model"
)

// ColorResolver maps distributor color codes to display names. A miss is
// never an error: the distributor's own label is used verbatim, and the
// code itself is the last resort, so the result is never empty.
type ColorResolver struct {
	codes map[string]string
}

func NewColorResolver(maps *ConfigMaps) *ColorResolver {
	return &ColorResolver{codes: maps.ColorCodes}
}

func (c *ColorResolver) Resolve(colorCode, colorNameRaw string) string {
	if name, ok := c.codes[model.NormalizeColorCode(colorCode)]; ok {
		return name
	}
	if raw := strings.TrimSpace(colorNameRaw); raw != "" {
		return raw
	}
	return model.NormalizeColorCode(colorCode)
}
