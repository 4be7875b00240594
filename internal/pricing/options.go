package pricing

import (
	"fmt"

	"github.com/aluvista/pricing-app/internal/models"
)

// PriceComponentOptions prices every option category of a component's
// product: the user's selection when present, the catalog standard option
// otherwise. Standard cost is carried on the breakdown so the aggregator
// can track it as no-markup; an upgrade carries the standard option's own
// cost so only the incremental difference is marked up.
func PriceComponentOptions(comp *models.ComponentInstance, ctx *LineContext) []LineBreakdown {
	var out []LineBreakdown
	for ci := range comp.Product.OptionCategories {
		cat := &comp.Product.OptionCategories[ci]
		sel := findSelection(comp.Options, cat.ID)

		if sel == nil {
			// No selection: the standard option applies at cost.
			std := findOption(cat, cat.StandardOptionID)
			if std == nil {
				continue
			}
			b := priceOption(std, 1, defaultVariantID(std), ctx)
			b.Detail = fmt.Sprintf("standard option %q: %s", std.Name, b.Detail)
			b.StandardCost = b.Total
			out = append(out, b)
			continue
		}

		opt := findOptionByID(cat, sel.OptionID)
		if opt == nil {
			out = append(out, LineBreakdown{
				Category: CategoryHardware,
				Method:   MethodNoCostFound,
				Detail:   fmt.Sprintf("selected option %d not in catalog", sel.OptionID),
			})
			continue
		}
		qty := float64(sel.Quantity)
		if qty <= 0 {
			qty = 1
		}

		if sel.Included {
			// Charged at zero but still recorded for audit.
			out = append(out, LineBreakdown{
				PartNumber: opt.PartNumber,
				Category:   CategoryHardware,
				Method:     MethodIncludedOption,
				Detail:     fmt.Sprintf("option %q included at no charge", opt.Name),
				Quantity:   qty,
			})
			continue
		}

		b := priceOption(opt, qty, sel.VariantID, ctx)
		isStandard := cat.StandardOptionID != nil && *cat.StandardOptionID == opt.ID
		if isStandard {
			b.Detail = fmt.Sprintf("standard option %q: %s", opt.Name, b.Detail)
			b.StandardCost = b.Total
		} else {
			b.Detail = fmt.Sprintf("option %q: %s", opt.Name, b.Detail)
			// Exempt the standard option's own cost from markup so the
			// upgrade is only marked up on the difference.
			if std := findOption(cat, cat.StandardOptionID); std != nil {
				stdPrice := priceOption(std, 1, defaultVariantID(std), ctx)
				b.StandardCost = stdPrice.Total
			}
		}
		out = append(out, b)
	}
	return out
}

// priceOption resolves an option's cost: its own part (sale price,
// extrusion-with-BOM-context or direct cost via the line chain) plus any
// linked parts admitted by the selected variant.
func priceOption(opt *models.ProductOption, qty float64, variantID *uint, ctx *LineContext) LineBreakdown {
	var b LineBreakdown
	if opt.PartNumber != "" {
		b = priceOptionPart(opt.PartNumber, qty, ctx)
	} else {
		b = LineBreakdown{Category: CategoryHardware, Method: MethodNoCostFound, Quantity: qty}
	}
	for li := range opt.LinkedParts {
		lp := &opt.LinkedParts[li]
		if !variantAdmits(opt, lp, variantID) {
			continue
		}
		lb := priceOptionPart(lp.PartNumber, lp.Quantity, ctx)
		b.Total += lb.Total
		b.HybridRemaining += lb.HybridRemaining
		b.FinishCost += lb.FinishCost
		b.Detail += fmt.Sprintf("; linked %s %.4f", lp.PartNumber, lb.Total)
		if b.Method == MethodNoCostFound && lb.Method != MethodNoCostFound {
			b.Method = lb.Method
		}
	}
	return b
}

// priceOptionPart runs a part through the BOM line chain with a synthetic
// line, so options price exactly like BOM lines with the same context.
func priceOptionPart(partNumber string, qty float64, ctx *LineContext) LineBreakdown {
	part := ctx.Catalog.Part(partNumber)
	line := models.ProductBOM{PartNumber: partNumber, Quantity: qty}
	if part != nil {
		line.PartType = part.PartType
	}
	return PriceBOMLine(&line, ctx)
}

// variantAdmits reports whether a linked part applies under the selected
// variant. Parts with no variant apply universally; with a variant, only
// the explicitly selected variant (or the option's default when nothing is
// selected) admits the part.
func variantAdmits(opt *models.ProductOption, lp *models.LinkedPart, selected *uint) bool {
	if lp.VariantID == nil {
		return true
	}
	if selected != nil {
		return *lp.VariantID == *selected
	}
	def := defaultVariantID(opt)
	return def != nil && *lp.VariantID == *def
}

func defaultVariantID(opt *models.ProductOption) *uint {
	for i := range opt.Variants {
		if opt.Variants[i].IsDefault {
			return &opt.Variants[i].ID
		}
	}
	return nil
}

func findSelection(opts []models.ComponentOption, categoryID uint) *models.ComponentOption {
	for i := range opts {
		if opts[i].CategoryID == categoryID {
			return &opts[i]
		}
	}
	return nil
}

func findOption(cat *models.OptionCategory, id *uint) *models.ProductOption {
	if id == nil {
		return nil
	}
	return findOptionByID(cat, *id)
}

func findOptionByID(cat *models.OptionCategory, id uint) *models.ProductOption {
	for i := range cat.Options {
		if cat.Options[i].ID == id {
			return &cat.Options[i]
		}
	}
	return nil
}
