package model

import (
	"errors"
	"fmt"
)

// ErrEmptyConfig is fatal: the engine cannot classify anything without at
// least one populated lookup table.
var ErrEmptyConfig = errors.New("all config maps are empty")

// DataError flags a malformed feed row. Collected per row, never fatal to
// the batch; the offending row is excluded and reported.
type DataError struct {
	StyleCode string `json:"style_code,omitempty"`
	ColorCode string `json:"color_code,omitempty"`
	Line      int    `json:"line,omitempty"`
	Reason    string `json:"reason"`
}

func (e DataError) Error() string {
	if e.StyleCode == "" {
		return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("%s-%s: %s", e.StyleCode, e.ColorCode, e.Reason)
}

// CollisionError means a computed SKU or handle duplicates one already
// emitted in this run. Upstream data corruption: the whole style is
// excluded, not partially emitted.
type CollisionError struct {
	Kind      string // "sku" or "handle"
	Value     string
	StyleCode string
}

func (e CollisionError) Error() string {
	return fmt.Sprintf("%s collision on %q (style %s)", e.Kind, e.Value, e.StyleCode)
}
