package models

import "time"

// Part type constants used for costing dispatch. The declared type on a BOM
// line may disagree with the catalog record; the catalog record wins.
const (
	PartTypeHardware  = "Hardware"
	PartTypeFastener  = "Fastener"
	PartTypeExtrusion = "Extrusion"
	PartTypeCutStock  = "CutStock"
	PartTypeGlass     = "Glass"
	PartTypePackaging = "Packaging"
	PartTypeOther     = "Other"
)

// MasterPart is the catalog-level part record.
type MasterPart struct {
	ID          uint   `gorm:"primaryKey"`
	PartNumber  string `gorm:"size:60;not null;uniqueIndex"`
	Description string
	PartType    string `gorm:"size:20;not null;index"`
	// Cost is the direct/inventory cost per unit. Nil means "no cost on file".
	Cost *float64
	// SalePrice, when set, overrides every other pricing method.
	SalePrice *float64
	// Weight-derived extrusion pricing inputs.
	WeightPerFoot float64
	PricePerLb    float64
	// ProfilePerimeter is the coated perimeter of the extrusion profile in
	// inches, used for square-foot finish surcharges.
	ProfilePerimeter float64
	// MillFinishOnly parts never take a finish surcharge and always use the
	// plain base price on stock rules.
	MillFinishOnly bool
	UnitOfMeasure  string `gorm:"size:10"` // EA, LF, SF
	StockRules     []StockLengthRule `gorm:"foreignKey:MasterPartID"`
	PricingRules   []PricingRule     `gorm:"foreignKey:MasterPartID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StockLengthRule defines a dimension-bounded pricing window for one stock
// length of a master part. Nil bounds are unconstrained; set bounds are
// inclusive.
type StockLengthRule struct {
	ID           uint `gorm:"primaryKey"`
	MasterPartID uint `gorm:"not null;index"`
	MinWidth     *float64
	MaxWidth     *float64
	MinHeight    *float64
	MaxHeight    *float64
	MinLength    *float64
	MaxLength    *float64
	StockLength  float64 `gorm:"not null"` // inches
	// Finish-specific base prices per stock piece. BasePrice is the plain
	// (mill) price and is the fallback when a finish price is absent.
	BasePrice      float64
	BasePriceBlack *float64
	BasePriceClear *float64
	// Optional pricing formula evaluated with basePrice, stockLength,
	// requiredLength and piecesPerUnit variables (FULL_STOCK only).
	Formula       string
	PiecesPerUnit float64 `gorm:"default:1"`
	Active        bool    `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PricingRule is a project-level pricing entry for parts that are neither
// extrusions nor cut stock (glass, packaging, misc). Formula wins over
// BasePrice when both are present.
type PricingRule struct {
	ID           uint `gorm:"primaryKey"`
	MasterPartID uint `gorm:"not null;index"`
	Formula      string
	BasePrice    float64
	Active       bool `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExtrusionFinishPricing maps a finish color to a surcharge rate. Unit
// selects the surcharge basis; the source data was ambiguous between the
// two, so it is carried as configuration rather than hard-coded.
type ExtrusionFinishPricing struct {
	ID          uint   `gorm:"primaryKey"`
	FinishName  string `gorm:"size:40;not null;index"`
	CostPerUnit float64
	Unit        string `gorm:"size:15;not null;default:'linear_foot'"` // linear_foot | square_foot
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
