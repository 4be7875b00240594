package models

import (
	"strings"
	"time"
)

// Costing methods for extrusion and cut stock pricing.
const (
	CostingFullStock       = "FULL_STOCK"
	CostingPercentageBased = "PERCENTAGE_BASED"
	CostingHybrid          = "HYBRID"
)

// Project carries the pricing policy shared by all of its openings: the
// active extrusion costing method, part exclusions, markup percentages and
// the global discount.
type Project struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	Client string
	// CostingMethod is one of the Costing* constants.
	CostingMethod string `gorm:"size:20;not null;default:'FULL_STOCK'"`
	// ExcludedParts is a comma-separated list of part numbers that are
	// always priced percentage-based regardless of CostingMethod.
	ExcludedParts string
	// Per-category markup percentages. A zero category falls back to
	// GlobalMarkup.
	MarkupExtrusion float64
	MarkupHardware  float64
	MarkupGlass     float64
	MarkupPackaging float64
	MarkupOther     float64
	GlobalMarkup    float64
	DiscountPercent float64
	// Post-markup policy steps.
	InstallationCost float64
	TaxPercent       float64
	// MaterialPricePerLb overrides per-part PricePerLb when a part has none.
	MaterialPricePerLb float64
	Openings           []Opening `gorm:"foreignKey:ProjectID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ExcludedPartSet parses ExcludedParts into a lookup set.
func (p *Project) ExcludedPartSet() map[string]bool {
	set := map[string]bool{}
	for _, pn := range strings.Split(p.ExcludedParts, ",") {
		pn = strings.TrimSpace(pn)
		if pn != "" {
			set[pn] = true
		}
	}
	return set
}
