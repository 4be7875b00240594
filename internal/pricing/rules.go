package pricing

import (
	"strings"

	"github.com/aluvista/pricing-app/internal/models"
)

// SelectStockRule picks the stock-length rule applicable to a required cut
// length and the component's dimensions. Bounds are nullable and inclusive.
// Among matching rules the most constrained one wins (most non-nil bounds);
// ties go to the smallest stock length that still fits, to minimize waste.
// Returns nil when nothing matches: the caller must treat that as "no
// extrusion pricing available", not as zero cost.
func SelectStockRule(rules []models.StockLengthRule, requiredLength, width, height float64) *models.StockLengthRule {
	var best *models.StockLengthRule
	bestSpecificity := -1
	for i := range rules {
		r := &rules[i]
		if !r.Active {
			continue
		}
		if !admits(r.MinWidth, r.MaxWidth, width) {
			continue
		}
		if !admits(r.MinHeight, r.MaxHeight, height) {
			continue
		}
		if r.MinLength != nil || r.MaxLength != nil {
			if !admits(r.MinLength, r.MaxLength, requiredLength) {
				continue
			}
		} else if r.StockLength < requiredLength {
			// must fit: the cut has to come out of one stock piece
			continue
		}
		spec := specificity(r)
		switch {
		case spec > bestSpecificity:
			best, bestSpecificity = r, spec
		case spec == bestSpecificity && best != nil && r.StockLength < best.StockLength:
			best = r
		}
	}
	return best
}

// admits reports whether v falls inside the nullable inclusive [min,max]
// window. A zero dimension is only checked against bounds that are set.
func admits(min, max *float64, v float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func specificity(r *models.StockLengthRule) int {
	n := 0
	for _, b := range []*float64{r.MinWidth, r.MaxWidth, r.MinHeight, r.MaxHeight, r.MinLength, r.MaxLength} {
		if b != nil {
			n++
		}
	}
	return n
}

// RuleBasePrice resolves the finish-specific base price of a rule.
// Mill-finish-only parts always use the plain price. Otherwise a black or
// clear finish picks its dedicated price when present, falling back to the
// plain price.
func RuleBasePrice(rule *models.StockLengthRule, part *models.MasterPart, finishColor string) float64 {
	if rule == nil {
		return 0
	}
	if part != nil && part.MillFinishOnly {
		return rule.BasePrice
	}
	switch normalizeFinish(finishColor) {
	case "black":
		if rule.BasePriceBlack != nil {
			return *rule.BasePriceBlack
		}
	case "clear":
		if rule.BasePriceClear != nil {
			return *rule.BasePriceClear
		}
	}
	return rule.BasePrice
}

func normalizeFinish(finish string) string {
	return strings.ToLower(strings.TrimSpace(finish))
}

// IsMillFinish reports whether a finish color means the uncolored default.
// A blank finish is mill finish.
func IsMillFinish(finish string) bool {
	f := normalizeFinish(finish)
	return f == "" || f == "mill" || f == "mill finish"
}
