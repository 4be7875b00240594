package models

import "time"

// Product is a catalog item: a bill of materials plus configurable option
// categories and glass dimension formulas.
type Product struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	Code               string `gorm:"size:40;index"`
	GlassWidthFormula  string // evaluated with width/height variables
	GlassHeightFormula string
	BOM                []ProductBOM     `gorm:"foreignKey:ProductID"`
	OptionCategories   []OptionCategory `gorm:"foreignKey:ProductID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProductBOM is one required part on a product.
type ProductBOM struct {
	ID         uint   `gorm:"primaryKey"`
	ProductID  uint   `gorm:"not null;index"`
	Position   int    `gorm:"not null;default:0"`
	PartNumber string `gorm:"size:60;not null"`
	PartType   string `gorm:"size:20;not null"`
	Quantity   float64 `gorm:"not null;default:1"`
	// Cost is an explicit per-line cost that short-circuits catalog pricing.
	Cost *float64
	// CutLengthFormula yields the required cut length in inches from the
	// component's width/height.
	CutLengthFormula string
	// OptionID links the line to one specific option: the line is only
	// included when exactly that option is selected (its cost still flows
	// through this line, the option pricer charges the option's own part).
	OptionID *uint
	// OptionCategoryID is the coarser link for lines any selection in the
	// category pulls in. Ignored when OptionID is set.
	OptionCategoryID *uint
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OptionCategory groups the selectable options of a product. Every category
// designates a standard (default) option which prices at cost with no markup.
type OptionCategory struct {
	ID               uint   `gorm:"primaryKey"`
	ProductID        uint   `gorm:"not null;index"`
	Name             string `gorm:"not null"`
	StandardOptionID *uint
	// Range-quantity categories let the user pick a quantity within bounds.
	MinQuantity int `gorm:"default:1"`
	MaxQuantity int `gorm:"default:1"`
	Options     []ProductOption `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductOption is one selectable option; it may carry its own part number
// and/or linked parts keyed by variant.
type ProductOption struct {
	ID          uint   `gorm:"primaryKey"`
	CategoryID  uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	PartNumber  string `gorm:"size:60"`
	LinkedParts []LinkedPart    `gorm:"foreignKey:OptionID"`
	Variants    []OptionVariant `gorm:"foreignKey:OptionID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OptionVariant is a sub-choice of an option (e.g. handle color).
type OptionVariant struct {
	ID        uint   `gorm:"primaryKey"`
	OptionID  uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LinkedPart attaches an extra part to an option. A nil VariantID applies
// universally; otherwise the part is charged only when its variant is the
// selected (or default) one.
type LinkedPart struct {
	ID         uint   `gorm:"primaryKey"`
	OptionID   uint   `gorm:"not null;index"`
	PartNumber string `gorm:"size:60;not null"`
	Quantity   float64 `gorm:"not null;default:1"`
	VariantID  *uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
