// Package pricing implements the cost and price calculation engine for
// openings: stock-length rule selection, extrusion costing strategies,
// BOM line pricing, option pricing, per-opening aggregation and the quote
// markup engine. Everything in this package is a pure function of a catalog
// snapshot plus the opening/project state passed in.
package pricing

import (
	"github.com/aluvista/pricing-app/internal/models"
)

// Breakdown method tags. Every priced line carries exactly one so the API
// and quote views can explain where a cost came from.
const (
	MethodSalePrice          = "sale_price"
	MethodLinearFootHardware = "linear_foot_hardware"
	MethodDirectLineCost     = "direct_line_cost"
	MethodFormula            = "formula"
	MethodHardwareCost       = "hardware_cost"
	MethodStockRule          = "stock_length_rule"
	MethodPricingRule        = "pricing_rule"
	MethodMasterPartCost     = "master_part_cost"
	MethodIncludedOption     = "included_option"
	MethodNoCostFound        = "no_cost_found"
)

// Cost categories for aggregation and markup.
const (
	CategoryExtrusion = "extrusion"
	CategoryHardware  = "hardware"
	CategoryGlass     = "glass"
	CategoryPackaging = "packaging"
	CategoryOther     = "other"
)

// CategoryFor maps a part type to its aggregation bucket.
func CategoryFor(partType string) string {
	switch partType {
	case models.PartTypeExtrusion, models.PartTypeCutStock:
		return CategoryExtrusion
	case models.PartTypeHardware, models.PartTypeFastener:
		return CategoryHardware
	case models.PartTypeGlass:
		return CategoryGlass
	case models.PartTypePackaging:
		return CategoryPackaging
	default:
		return CategoryOther
	}
}

// Catalog is a read-only snapshot of the part data one calculation needs.
// Built once per request; never mutated by the engine.
type Catalog struct {
	Parts         map[string]*models.MasterPart // keyed by part number
	StockRules    map[uint][]models.StockLengthRule
	PricingRules  map[uint][]models.PricingRule
	FinishPricing []models.ExtrusionFinishPricing
}

// Part looks up a master part by part number; nil when absent.
func (c *Catalog) Part(partNumber string) *models.MasterPart {
	if c == nil || c.Parts == nil {
		return nil
	}
	return c.Parts[partNumber]
}

// RulesFor returns the stock-length rules of a master part.
func (c *Catalog) RulesFor(part *models.MasterPart) []models.StockLengthRule {
	if c == nil || part == nil {
		return nil
	}
	return c.StockRules[part.ID]
}

// PricingRulesFor returns the project-level pricing rules of a master part.
func (c *Catalog) PricingRulesFor(part *models.MasterPart) []models.PricingRule {
	if c == nil || part == nil {
		return nil
	}
	return c.PricingRules[part.ID]
}

// Config is the immutable per-calculation pricing policy, resolved once
// from the project before any line is priced.
type Config struct {
	CostingMethod      string
	ExcludedParts      map[string]bool
	MaterialPricePerLb float64
}

// ConfigFromProject resolves a project's policy into an engine config.
// Precedence is documented here once: the project's costing method, its
// exclusion list, and its global material price per pound (used when a part
// carries no PricePerLb of its own).
func ConfigFromProject(p *models.Project) Config {
	cfg := Config{
		CostingMethod:      models.CostingFullStock,
		ExcludedParts:      map[string]bool{},
		MaterialPricePerLb: 0,
	}
	if p == nil {
		return cfg
	}
	if p.CostingMethod != "" {
		cfg.CostingMethod = p.CostingMethod
	}
	cfg.ExcludedParts = p.ExcludedPartSet()
	cfg.MaterialPricePerLb = p.MaterialPricePerLb
	return cfg
}

// LineBreakdown is the audit record every pricing path must produce,
// including the zero-cost fallback.
type LineBreakdown struct {
	PartNumber  string  `json:"part_number"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Method      string  `json:"method"`
	Detail      string  `json:"detail,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unit_cost"`
	FinishCost  float64 `json:"finish_cost,omitempty"`
	Total       float64 `json:"total"`
	// HybridRemaining is the at-cost remainder of a HYBRID split, exempt
	// from markup and tracked separately by the aggregator.
	HybridRemaining float64 `json:"hybrid_remaining,omitempty"`
	// StandardCost is the standard option's own cost carried by an upgrade
	// line; the markup engine exempts it.
	StandardCost float64 `json:"standard_cost,omitempty"`
}

// CategoryTotals is the per-opening cost snapshot the quote engine consumes.
type CategoryTotals struct {
	Extrusion       float64 `json:"extrusion"`
	Hardware        float64 `json:"hardware"`
	Glass           float64 `json:"glass"`
	Packaging       float64 `json:"packaging"`
	Other           float64 `json:"other"`
	StandardOption  float64 `json:"standardOption"`
	HybridRemaining float64 `json:"hybridRemaining"`
}

// Add accumulates a cost into the named category bucket.
func (t *CategoryTotals) Add(category string, cost float64) {
	switch category {
	case CategoryExtrusion:
		t.Extrusion += cost
	case CategoryHardware:
		t.Hardware += cost
	case CategoryGlass:
		t.Glass += cost
	case CategoryPackaging:
		t.Packaging += cost
	default:
		t.Other += cost
	}
}

// Sum returns the raw cost across the five category buckets.
func (t CategoryTotals) Sum() float64 {
	return t.Extrusion + t.Hardware + t.Glass + t.Packaging + t.Other
}

// ComponentBreakdown groups the priced lines of one component instance.
type ComponentBreakdown struct {
	PanelID     uint            `json:"panel_id"`
	ComponentID uint            `json:"component_id"`
	ProductName string          `json:"product_name"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Lines       []LineBreakdown `json:"lines"`
	Total       float64         `json:"total"`
}

// PriceBreakdown is the full output of one opening calculation.
type PriceBreakdown struct {
	OpeningID        uint                 `json:"opening_id"`
	TotalPrice       float64              `json:"totalPrice"`
	Components       []ComponentBreakdown `json:"components"`
	TotalsByCategory CategoryTotals       `json:"totalsByCategory"`
}
