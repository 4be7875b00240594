package pricing

import (
	"strings"

	"github.com/aluvista/pricing-app/internal/models"
)

// FinishSurcharge computes the additive cost of a colored/anodized finish
// over the charged length of an extrusion. Mill finish (the blank default)
// and mill-finish-only parts take no surcharge. The surcharge basis is part
// of the finish pricing record: per linear foot of the charged length, or
// per square foot of coated surface (charged length times the profile
// perimeter). A square-foot rate on a part with no recorded profile
// perimeter falls back to the linear-foot basis.
func FinishSurcharge(finishPricing []models.ExtrusionFinishPricing, finishColor string, part *models.MasterPart, chargedLength float64) float64 {
	if IsMillFinish(finishColor) {
		return 0
	}
	if part != nil && part.MillFinishOnly {
		return 0
	}
	if chargedLength <= 0 {
		return 0
	}
	entry := findFinish(finishPricing, finishColor)
	if entry == nil || entry.CostPerUnit <= 0 {
		return 0
	}
	lengthFt := chargedLength / 12
	if entry.Unit == "square_foot" && part != nil && part.ProfilePerimeter > 0 {
		return lengthFt * (part.ProfilePerimeter / 12) * entry.CostPerUnit
	}
	return lengthFt * entry.CostPerUnit
}

func findFinish(finishPricing []models.ExtrusionFinishPricing, finishColor string) *models.ExtrusionFinishPricing {
	want := normalizeFinish(finishColor)
	for i := range finishPricing {
		if strings.ToLower(strings.TrimSpace(finishPricing[i].FinishName)) == want {
			return &finishPricing[i]
		}
	}
	return nil
}
