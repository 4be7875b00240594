package pricing

import (
	"fmt"
	"strings"

	"github.com/aluvista/pricing-app/internal/formula"
	"github.com/aluvista/pricing-app/internal/models"
)

// LineContext carries everything a BOM line needs besides the line itself:
// the catalog snapshot, the resolved project policy, the component's
// effective dimensions, derived glass dimensions and the opening finish.
type LineContext struct {
	Catalog     *Catalog
	Config      Config
	Width       float64 // inches
	Height      float64
	GlassWidth  float64
	GlassHeight float64
	FinishColor string
}

// Vars exposes the dimension variables available to catalog formulas.
func (ctx *LineContext) Vars() map[string]float64 {
	return map[string]float64{
		"width":       ctx.Width,
		"height":      ctx.Height,
		"glassWidth":  ctx.GlassWidth,
		"glassHeight": ctx.GlassHeight,
	}
}

// lineStrategy prices a BOM line one way, or declines by returning nil so
// the next strategy in the chain gets a chance.
type lineStrategy func(line *models.ProductBOM, part *models.MasterPart, ctx *LineContext) *LineBreakdown

// The strict priority chain of §pricing: sale price override, linear-foot
// hardware, direct line cost, generic formula, part-type dispatch. First
// match wins; PriceBOMLine appends the master-cost / no-cost fallback.
var lineStrategies = []lineStrategy{
	salePriceStrategy,
	linearFootHardwareStrategy,
	directLineCostStrategy,
	genericFormulaStrategy,
	partTypeStrategy,
}

// PriceBOMLine resolves the cost of one BOM line. It never fails: every
// outcome, including "nothing matched", produces a breakdown record.
func PriceBOMLine(line *models.ProductBOM, ctx *LineContext) LineBreakdown {
	part := ctx.Catalog.Part(line.PartNumber)
	for _, strat := range lineStrategies {
		if b := strat(line, part, ctx); b != nil {
			finishLineBreakdown(b, line, part)
			return *b
		}
	}
	if part != nil && part.Cost != nil {
		b := &LineBreakdown{
			Method:   MethodMasterPartCost,
			Detail:   fmt.Sprintf("master part cost %.4f x %.2f", *part.Cost, line.Quantity),
			UnitCost: *part.Cost,
			Total:    *part.Cost * line.Quantity,
		}
		finishLineBreakdown(b, line, part)
		return *b
	}
	b := &LineBreakdown{
		Method: MethodNoCostFound,
		Detail: "no pricing method matched",
	}
	finishLineBreakdown(b, line, part)
	return *b
}

func finishLineBreakdown(b *LineBreakdown, line *models.ProductBOM, part *models.MasterPart) {
	b.PartNumber = line.PartNumber
	b.Quantity = line.Quantity
	b.Category = CategoryFor(effectivePartType(line, part))
	if part != nil && b.Description == "" {
		b.Description = part.Description
	}
}

// effectivePartType prefers the catalog's declared type over the BOM line's.
func effectivePartType(line *models.ProductBOM, part *models.MasterPart) string {
	if part != nil && part.PartType != "" {
		return part.PartType
	}
	return line.PartType
}

// 1. Sale price override: bypasses every other rule (and all markup, which
// the quote engine handles by the category already being at sale price).
func salePriceStrategy(line *models.ProductBOM, part *models.MasterPart, _ *LineContext) *LineBreakdown {
	if part == nil || part.SalePrice == nil {
		return nil
	}
	return &LineBreakdown{
		Method:   MethodSalePrice,
		Detail:   fmt.Sprintf("sale price %.4f x %.2f", *part.SalePrice, line.Quantity),
		UnitCost: *part.SalePrice,
		Total:    *part.SalePrice * line.Quantity,
	}
}

// 2. Linear-foot hardware: hardware sold by the foot whose quantity comes
// from the line's cut-length formula (inches converted to feet).
func linearFootHardwareStrategy(line *models.ProductBOM, part *models.MasterPart, ctx *LineContext) *LineBreakdown {
	if part == nil || part.Cost == nil {
		return nil
	}
	t := effectivePartType(line, part)
	if t != models.PartTypeHardware && t != models.PartTypeFastener {
		return nil
	}
	if !strings.EqualFold(part.UnitOfMeasure, "LF") || line.CutLengthFormula == "" {
		return nil
	}
	lengthIn := formula.Evaluate(line.CutLengthFormula, ctx.Vars())
	feet := lengthIn / 12
	return &LineBreakdown{
		Method:   MethodLinearFootHardware,
		Detail:   fmt.Sprintf("%.2f lf x %.4f/lf x %.2f", feet, *part.Cost, line.Quantity),
		UnitCost: *part.Cost,
		Total:    feet * *part.Cost * line.Quantity,
	}
}

// 3. Direct line cost declared on the BOM entry itself.
func directLineCostStrategy(line *models.ProductBOM, _ *models.MasterPart, _ *LineContext) *LineBreakdown {
	if line.Cost == nil {
		return nil
	}
	return &LineBreakdown{
		Method:   MethodDirectLineCost,
		Detail:   fmt.Sprintf("line cost %.4f x %.2f", *line.Cost, line.Quantity),
		UnitCost: *line.Cost,
		Total:    *line.Cost * line.Quantity,
	}
}

// 4. Generic formula for lines that are not extrusions or cut stock: the
// formula result is a quantity when the part has a unit cost, otherwise it
// is the cost itself.
func genericFormulaStrategy(line *models.ProductBOM, part *models.MasterPart, ctx *LineContext) *LineBreakdown {
	if line.CutLengthFormula == "" {
		return nil
	}
	t := effectivePartType(line, part)
	if t == models.PartTypeExtrusion || t == models.PartTypeCutStock {
		return nil
	}
	v := formula.Evaluate(line.CutLengthFormula, ctx.Vars())
	if part != nil && part.Cost != nil {
		return &LineBreakdown{
			Method:   MethodFormula,
			Detail:   fmt.Sprintf("formula %.4f x unit %.4f x %.2f", v, *part.Cost, line.Quantity),
			UnitCost: *part.Cost,
			Total:    v * *part.Cost * line.Quantity,
		}
	}
	return &LineBreakdown{
		Method:   MethodFormula,
		Detail:   fmt.Sprintf("formula result %.4f", v),
		UnitCost: v,
		Total:    v,
	}
}

// 5. Part-type specialized resolution.
func partTypeStrategy(line *models.ProductBOM, part *models.MasterPart, ctx *LineContext) *LineBreakdown {
	switch effectivePartType(line, part) {
	case models.PartTypeHardware, models.PartTypeFastener:
		if part == nil || part.Cost == nil {
			return nil
		}
		return &LineBreakdown{
			Method:   MethodHardwareCost,
			Detail:   fmt.Sprintf("hardware %.4f x %.2f", *part.Cost, line.Quantity),
			UnitCost: *part.Cost,
			Total:    *part.Cost * line.Quantity,
		}
	case models.PartTypeCutStock:
		return cutStockStrategy(line, part, ctx)
	case models.PartTypeExtrusion:
		return extrusionStrategy(line, part, ctx)
	default:
		return pricingRuleStrategy(line, part, ctx)
	}
}

// CutStock: stock rule lookup plus the costing strategy, priced from the
// part's own inventory cost per piece (never weight-derived).
func cutStockStrategy(line *models.ProductBOM, part *models.MasterPart, ctx *LineContext) *LineBreakdown {
	if part == nil {
		return nil
	}
	required := formula.Evaluate(line.CutLengthFormula, ctx.Vars())
	rule := SelectStockRule(ctx.Catalog.RulesFor(part), required, ctx.Width, ctx.Height)
	if rule == nil {
		return nil
	}
	piecePrice := rule.BasePrice
	if part.Cost != nil && *part.Cost > 0 {
		piecePrice = *part.Cost
	}
	charge := ChargeStock(piecePrice, rule.StockLength, required, ctx.Config.CostingMethod,
		ctx.Config.ExcludedParts[line.PartNumber], rule.Formula, rule.PiecesPerUnit)
	return &LineBreakdown{
		Method: MethodStockRule,
		Detail: fmt.Sprintf("cut stock %s: cut %.2f from %.2f stock, piece %.4f x %.2f",
			charge.Method, required, rule.StockLength, piecePrice, line.Quantity),
		UnitCost:        charge.Total(),
		Total:           charge.Total() * line.Quantity,
		HybridRemaining: charge.Remaining * line.Quantity,
	}
}

// Extrusion: stock rule lookup plus the costing strategy with the
// weight-derived (or finish-resolved base) piece price and the finish
// surcharge on the charged length.
func extrusionStrategy(line *models.ProductBOM, part *models.MasterPart, ctx *LineContext) *LineBreakdown {
	if part == nil {
		return nil
	}
	required := formula.Evaluate(line.CutLengthFormula, ctx.Vars())
	rule := SelectStockRule(ctx.Catalog.RulesFor(part), required, ctx.Width, ctx.Height)
	if rule == nil {
		return nil
	}
	piecePrice := PiecePrice(rule, part, ctx.FinishColor, ctx.Config.MaterialPricePerLb)
	if piecePrice <= 0 {
		return nil
	}
	charge := ChargeStock(piecePrice, rule.StockLength, required, ctx.Config.CostingMethod,
		ctx.Config.ExcludedParts[line.PartNumber], rule.Formula, rule.PiecesPerUnit)
	finish := FinishSurcharge(ctx.Catalog.FinishPricing, ctx.FinishColor, part, charge.ChargedLength)
	return &LineBreakdown{
		Method: MethodStockRule,
		Detail: fmt.Sprintf("extrusion %s: cut %.2f from %.2f stock, piece %.4f x %.2f",
			charge.Method, required, rule.StockLength, piecePrice, line.Quantity),
		UnitCost:        charge.Total(),
		FinishCost:      finish * line.Quantity,
		Total:           (charge.Total() + finish) * line.Quantity,
		HybridRemaining: charge.Remaining * line.Quantity,
	}
}

// Glass, packaging and other parts price through the part's project-level
// pricing rules: formula first, flat base price second.
func pricingRuleStrategy(line *models.ProductBOM, part *models.MasterPart, ctx *LineContext) *LineBreakdown {
	if part == nil {
		return nil
	}
	detailSuffix := ""
	if effectivePartType(line, part) == models.PartTypeGlass && (ctx.GlassWidth <= 0 || ctx.GlassHeight <= 0) {
		detailSuffix = " (invalid glass dimensions)"
	}
	for _, pr := range ctx.Catalog.PricingRulesFor(part) {
		if !pr.Active {
			continue
		}
		if pr.Formula != "" {
			v := formula.Evaluate(pr.Formula, ctx.Vars())
			return &LineBreakdown{
				Method:   MethodPricingRule,
				Detail:   fmt.Sprintf("pricing rule formula %.4f x %.2f%s", v, line.Quantity, detailSuffix),
				UnitCost: v,
				Total:    v * line.Quantity,
			}
		}
		if pr.BasePrice > 0 {
			return &LineBreakdown{
				Method:   MethodPricingRule,
				Detail:   fmt.Sprintf("pricing rule base %.4f x %.2f%s", pr.BasePrice, line.Quantity, detailSuffix),
				UnitCost: pr.BasePrice,
				Total:    pr.BasePrice * line.Quantity,
			}
		}
	}
	return nil
}
