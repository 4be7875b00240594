package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/aluvista/pricing-app/internal/models"
)

// QuotePrice is the customer-facing price derived from one opening's stored
// category totals. The markup engine never re-touches BOM data.
type QuotePrice struct {
	MarkedUpExtrusion float64 `json:"marked_up_extrusion"`
	MarkedUpHardware  float64 `json:"marked_up_hardware"`
	MarkedUpGlass     float64 `json:"marked_up_glass"`
	MarkedUpPackaging float64 `json:"marked_up_packaging"`
	MarkedUpOther     float64 `json:"marked_up_other"`
	// Added back verbatim, never marked up.
	HybridRemaining float64 `json:"hybrid_remaining"`
	StandardOption  float64 `json:"standard_option"`
	Subtotal        float64 `json:"subtotal"`
	Installation    float64 `json:"installation"`
	Tax             float64 `json:"tax"`
	Total           float64 `json:"total"`
}

// CustomerPrice re-derives the customer price from aggregated category
// totals and the project policy:
//
//   - the HYBRID at-cost remainder is pulled out of the extrusion bucket
//     before markup and added back verbatim at the end;
//   - the standard-option cost is pulled out of the hardware bucket the
//     same way;
//   - each remaining category is marked up by its category percentage
//     (falling back to the global markup when unset) and then discounted;
//   - installation is added after markup and tax is applied last.
func CustomerPrice(t CategoryTotals, project *models.Project) QuotePrice {
	var p models.Project
	if project != nil {
		p = *project
	}
	discount := 1 - p.DiscountPercent/100

	markUp := func(cost, categoryMarkup float64) float64 {
		m := categoryMarkup
		if m == 0 {
			m = p.GlobalMarkup
		}
		return cost * (1 + m/100) * discount
	}

	q := QuotePrice{
		MarkedUpExtrusion: markUp(t.Extrusion-t.HybridRemaining, p.MarkupExtrusion),
		MarkedUpHardware:  markUp(t.Hardware-t.StandardOption, p.MarkupHardware),
		MarkedUpGlass:     markUp(t.Glass, p.MarkupGlass),
		MarkedUpPackaging: markUp(t.Packaging, p.MarkupPackaging),
		MarkedUpOther:     markUp(t.Other, p.MarkupOther),
		HybridRemaining:   t.HybridRemaining,
		StandardOption:    t.StandardOption,
		Installation:      p.InstallationCost,
	}
	subtotal := q.MarkedUpExtrusion + q.MarkedUpHardware + q.MarkedUpGlass +
		q.MarkedUpPackaging + q.MarkedUpOther + q.HybridRemaining + q.StandardOption
	q.Subtotal = RoundCents(subtotal)

	withInstall := decimal.NewFromFloat(subtotal).Add(decimal.NewFromFloat(p.InstallationCost))
	tax := withInstall.Mul(decimal.NewFromFloat(p.TaxPercent).Div(decimal.NewFromInt(100)))
	q.Tax = tax.Round(2).InexactFloat64()
	q.Total = withInstall.Add(tax).Round(2).InexactFloat64()
	return q
}
