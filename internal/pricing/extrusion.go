package pricing

import (
	"github.com/aluvista/pricing-app/internal/formula"
	"github.com/aluvista/pricing-app/internal/models"
)

// StockCharge is the outcome of applying a costing method to one stock
// piece: the markup-eligible charge, the at-cost HYBRID remainder, and the
// length basis for any finish surcharge.
type StockCharge struct {
	Charged       float64 // markup-eligible cost per piece
	Remaining     float64 // HYBRID at-cost remainder, exempt from markup
	ChargedLength float64 // inches; basis for the finish surcharge
	Method        string  // FULL_STOCK, PERCENTAGE_BASED or HYBRID
}

// Total is the full amount owed for the piece, markup-eligible or not.
func (s StockCharge) Total() float64 { return s.Charged + s.Remaining }

// ChargeStock applies the project's extrusion costing method to one stock
// piece. piecePrice is the price of the full stock length (rule base price
// or weight-derived). An excluded part is always priced percentage-based
// regardless of the configured method.
//
// ruleFormula, when present on the rule, replaces the flat piece price in
// the full-stock charging path; it receives basePrice, stockLength,
// requiredLength and piecesPerUnit as variables.
func ChargeStock(piecePrice, stockLength, requiredLength float64, method string, excluded bool, ruleFormula string, piecesPerUnit float64) StockCharge {
	if excluded {
		method = models.CostingPercentageBased
	}
	usage := 1.0
	if stockLength > 0 {
		usage = requiredLength / stockLength
	}
	if usage > 1 {
		usage = 1
	}
	if usage < 0 {
		usage = 0
	}
	remaining := 1 - usage

	fullCharge := func() StockCharge {
		price := piecePrice
		if ruleFormula != "" {
			if v := formula.Evaluate(ruleFormula, map[string]float64{
				"basePrice":      piecePrice,
				"stockLength":    stockLength,
				"requiredLength": requiredLength,
				"piecesPerUnit":  piecesPerUnit,
			}); v > 0 {
				price = v
			}
		}
		return StockCharge{Charged: price, ChargedLength: stockLength, Method: models.CostingFullStock}
	}

	switch method {
	case models.CostingPercentageBased:
		// Strictly more than half the stick left over qualifies for
		// percentage pricing; exactly half does not, so near-full
		// utilization never earns a discount.
		if remaining > 0.5 {
			return StockCharge{Charged: piecePrice * usage, ChargedLength: requiredLength, Method: models.CostingPercentageBased}
		}
		return fullCharge()
	case models.CostingHybrid:
		if usage >= 0.5 {
			// Markup applies to the used portion only; the remainder is
			// passed through at cost.
			return StockCharge{
				Charged:       piecePrice * usage,
				Remaining:     piecePrice * remaining,
				ChargedLength: stockLength,
				Method:        models.CostingHybrid,
			}
		}
		return StockCharge{Charged: piecePrice * usage, ChargedLength: requiredLength, Method: models.CostingHybrid}
	default:
		return fullCharge()
	}
}

// PiecePrice resolves the price of one full stock piece for an extrusion:
// the rule's finish-resolved base price when set, otherwise derived from
// the part's weight per foot and price per pound. materialPricePerLb is the
// project-level fallback when the part has no price per pound of its own.
func PiecePrice(rule *models.StockLengthRule, part *models.MasterPart, finishColor string, materialPricePerLb float64) float64 {
	base := RuleBasePrice(rule, part, finishColor)
	if base > 0 {
		return base
	}
	if part == nil || rule == nil || part.WeightPerFoot <= 0 {
		return 0
	}
	perLb := part.PricePerLb
	if perLb <= 0 {
		perLb = materialPricePerLb
	}
	return part.WeightPerFoot * perLb * rule.StockLength / 12
}
