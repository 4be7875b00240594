package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/aluvista/pricing-app/internal/formula"
	"github.com/aluvista/pricing-app/internal/models"
)

// PriceOpening walks opening → panel → component → BOM lines and options,
// accumulating category totals. It is a pure function of its inputs and
// iterates in a deterministic order (panel position, BOM line position), so
// recomputation with unchanged inputs is bit-identical.
func PriceOpening(opening *models.Opening, catalog *Catalog, cfg Config) PriceBreakdown {
	out := PriceBreakdown{OpeningID: opening.ID}

	panels := make([]models.Panel, len(opening.Panels))
	copy(panels, opening.Panels)
	sort.SliceStable(panels, func(i, j int) bool { return panels[i].Position < panels[j].Position })

	for pi := range panels {
		panel := &panels[pi]
		w, h := PanelEffectiveDims(panel, opening)
		for ci := range panel.Components {
			comp := &panel.Components[ci]
			cb := priceComponent(comp, panel.ID, w, h, opening.FinishColor, catalog, cfg, &out.TotalsByCategory)
			out.Components = append(out.Components, cb)
		}
	}

	out.TotalPrice = RoundCents(out.TotalsByCategory.Sum())
	return out
}

// PanelEffectiveDims resolves the dimensions pricing runs against. A FRAME
// panel never contributes its own stored width/height: its size is derived
// from the non-frame sibling panels (sum of widths, max height), falling
// back to the opening's own bounds when it has no siblings.
func PanelEffectiveDims(panel *models.Panel, opening *models.Opening) (float64, float64) {
	if panel.Type != models.PanelFrame {
		return panel.Width, panel.Height
	}
	var sumW, maxH float64
	for i := range opening.Panels {
		sib := &opening.Panels[i]
		if sib.ID == panel.ID || sib.Type == models.PanelFrame {
			continue
		}
		sumW += sib.Width
		if sib.Height > maxH {
			maxH = sib.Height
		}
	}
	if sumW > 0 && maxH > 0 {
		return sumW, maxH
	}
	if opening.FinishedWidth > 0 && opening.FinishedHeight > 0 {
		return opening.FinishedWidth, opening.FinishedHeight
	}
	return opening.RoughWidth, opening.RoughHeight
}

func priceComponent(comp *models.ComponentInstance, panelID uint, width, height float64, finishColor string, catalog *Catalog, cfg Config, totals *CategoryTotals) ComponentBreakdown {
	ctx := &LineContext{
		Catalog:     catalog,
		Config:      cfg,
		Width:       width,
		Height:      height,
		FinishColor: finishColor,
	}
	ctx.GlassWidth = formula.Evaluate(comp.Product.GlassWidthFormula, ctx.Vars())
	ctx.GlassHeight = formula.Evaluate(comp.Product.GlassHeightFormula, ctx.Vars())

	cb := ComponentBreakdown{
		PanelID:     panelID,
		ComponentID: comp.ID,
		ProductName: comp.Product.Name,
		Width:       width,
		Height:      height,
	}

	selectedOption := map[uint]bool{}
	selectedCategory := map[uint]bool{}
	for i := range comp.Options {
		selectedOption[comp.Options[i].OptionID] = true
		selectedCategory[comp.Options[i].CategoryID] = true
	}

	bom := make([]models.ProductBOM, len(comp.Product.BOM))
	copy(bom, comp.Product.BOM)
	sort.SliceStable(bom, func(i, j int) bool { return bom[i].Position < bom[j].Position })

	for li := range bom {
		line := &bom[li]
		// Lines bound to one option only apply when exactly that option is
		// selected; category-bound lines apply on any selection in the
		// category. The option pricer charges the option's own part, these
		// lines charge the BOM material the selection pulls in.
		if line.OptionID != nil {
			if !selectedOption[*line.OptionID] {
				continue
			}
		} else if line.OptionCategoryID != nil && !selectedCategory[*line.OptionCategoryID] {
			continue
		}
		b := PriceBOMLine(line, ctx)
		cb.Lines = append(cb.Lines, b)
		totals.Add(b.Category, b.Total)
		totals.HybridRemaining += b.HybridRemaining
		cb.Total += b.Total
	}

	for _, b := range PriceComponentOptions(comp, ctx) {
		cb.Lines = append(cb.Lines, b)
		totals.Add(b.Category, b.Total)
		totals.HybridRemaining += b.HybridRemaining
		totals.StandardOption += b.StandardCost
		cb.Total += b.Total
	}

	return cb
}

// RoundCents rounds a monetary amount to two decimals.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
