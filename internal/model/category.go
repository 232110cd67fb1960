package model

import (
	"fmt"
	"image/color"
	"strings"
)

// Category is the closed set of cargo kinds the twin knows how to colour.
// Unknown upstream strings map to CategoryDefault.
type Category int

const (
	CategoryDefault Category = iota
	CategoryAgricultural
	CategoryMining
	CategoryTextile
	CategoryChemical
	CategoryFishing
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryAgricultural,
	CategoryMining,
	CategoryTextile,
	CategoryChemical,
	CategoryFishing,
	CategoryDefault,
}

// categoryAliases maps normalized upstream identifiers to categories.
var categoryAliases = map[string]Category{
	"agropecuario": CategoryAgricultural,
	"agricultural": CategoryAgricultural,
	"agriculture":  CategoryAgricultural,
	"minero":       CategoryMining,
	"mining":       CategoryMining,
	"textil":       CategoryTextile,
	"textile":      CategoryTextile,
	"quimico":      CategoryChemical,
	"químico":      CategoryChemical,
	"chemical":     CategoryChemical,
	"pesquero":     CategoryFishing,
	"fishing":      CategoryFishing,
	"fishery":      CategoryFishing,
}

// ParseCategory maps a loose upstream identifier to a Category.
func ParseCategory(s string) Category {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	return CategoryDefault
}

func (c Category) String() string {
	switch c {
	case CategoryAgricultural:
		return "Agricultural"
	case CategoryMining:
		return "Mining"
	case CategoryTextile:
		return "Textile"
	case CategoryChemical:
		return "Chemical"
	case CategoryFishing:
		return "Fishing"
	default:
		return "Other"
	}
}

// Color returns the display colour for the category.
func (c Category) Color() color.NRGBA {
	switch c {
	case CategoryAgricultural:
		return color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	case CategoryMining:
		return color.NRGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff}
	case CategoryTextile:
		return color.NRGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff}
	case CategoryChemical:
		return color.NRGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	case CategoryFishing:
		return color.NRGBA{R: 0x06, G: 0xb6, B: 0xd4, A: 0xff}
	default:
		return color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	}
}

// Hex returns the colour as "#rrggbb".
func (c Category) Hex() string {
	col := c.Color()
	return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
}
