package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aluvista/pricing-app/internal/models"
	"github.com/aluvista/pricing-app/internal/pricing"
)

var ErrOpeningNotFound = errors.New("opening_not_found")

// PricingService orchestrates a price calculation: load the opening graph
// and a catalog snapshot, run the pure engine, persist the result as one
// full replacement write.
type PricingService struct {
	db *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService { return &PricingService{db: db} }

// CalculatePrice computes and persists the price of one opening. The write
// replaces the whole cached snapshot (price, category costs, timestamp) in
// a single update, so concurrent recalculations are last-writer-wins and a
// reader never observes a partially updated snapshot. Recalculation with
// unchanged inputs is idempotent.
func (s *PricingService) CalculatePrice(openingID uint) (*pricing.PriceBreakdown, error) {
	var opening models.Opening
	err := s.db.
		Preload("Panels", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Panels.Components").
		Preload("Panels.Components.Options").
		Preload("Panels.Components.Product").
		Preload("Panels.Components.Product.BOM", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Panels.Components.Product.OptionCategories").
		Preload("Panels.Components.Product.OptionCategories.Options").
		Preload("Panels.Components.Product.OptionCategories.Options.LinkedParts").
		Preload("Panels.Components.Product.OptionCategories.Options.Variants").
		First(&opening, openingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOpeningNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load opening %d: %w", openingID, err)
	}

	var project models.Project
	if err := s.db.First(&project, opening.ProjectID).Error; err != nil {
		return nil, fmt.Errorf("load project %d: %w", opening.ProjectID, err)
	}

	catalog, err := s.loadCatalog(&opening)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	breakdown := pricing.PriceOpening(&opening, catalog, pricing.ConfigFromProject(&project))

	// Nothing is written until the whole opening computed; a failure above
	// leaves the previous snapshot in place.
	now := time.Now().UTC()
	update := map[string]any{
		"price":                 breakdown.TotalPrice,
		"extrusion_cost":        breakdown.TotalsByCategory.Extrusion,
		"hardware_cost":         breakdown.TotalsByCategory.Hardware,
		"glass_cost":            breakdown.TotalsByCategory.Glass,
		"packaging_cost":        breakdown.TotalsByCategory.Packaging,
		"other_cost":            breakdown.TotalsByCategory.Other,
		"standard_option_cost":  breakdown.TotalsByCategory.StandardOption,
		"hybrid_remaining_cost": breakdown.TotalsByCategory.HybridRemaining,
		"price_calculated_at":   &now,
	}
	if err := s.db.Model(&models.Opening{}).Where("id = ?", opening.ID).Updates(update).Error; err != nil {
		return nil, fmt.Errorf("persist price for opening %d: %w", opening.ID, err)
	}
	return &breakdown, nil
}

// loadCatalog builds the read-only snapshot for exactly the part numbers
// the opening references.
func (s *PricingService) loadCatalog(opening *models.Opening) (*pricing.Catalog, error) {
	numbers := collectPartNumbers(opening)
	catalog := &pricing.Catalog{
		Parts:        map[string]*models.MasterPart{},
		StockRules:   map[uint][]models.StockLengthRule{},
		PricingRules: map[uint][]models.PricingRule{},
	}
	if len(numbers) == 0 {
		return catalog, nil
	}

	var parts []models.MasterPart
	if err := s.db.Where("part_number IN ?", numbers).Find(&parts).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(parts))
	for i := range parts {
		catalog.Parts[parts[i].PartNumber] = &parts[i]
		ids = append(ids, parts[i].ID)
	}

	if len(ids) > 0 {
		var stockRules []models.StockLengthRule
		if err := s.db.Where("master_part_id IN ?", ids).Order("id").Find(&stockRules).Error; err != nil {
			return nil, err
		}
		for _, r := range stockRules {
			catalog.StockRules[r.MasterPartID] = append(catalog.StockRules[r.MasterPartID], r)
		}
		var pricingRules []models.PricingRule
		if err := s.db.Where("master_part_id IN ?", ids).Order("id").Find(&pricingRules).Error; err != nil {
			return nil, err
		}
		for _, r := range pricingRules {
			catalog.PricingRules[r.MasterPartID] = append(catalog.PricingRules[r.MasterPartID], r)
		}
	}

	if err := s.db.Order("id").Find(&catalog.FinishPricing).Error; err != nil {
		return nil, err
	}
	return catalog, nil
}

func collectPartNumbers(opening *models.Opening) []string {
	seen := map[string]bool{}
	var numbers []string
	add := func(pn string) {
		if pn != "" && !seen[pn] {
			seen[pn] = true
			numbers = append(numbers, pn)
		}
	}
	for pi := range opening.Panels {
		for ci := range opening.Panels[pi].Components {
			prod := &opening.Panels[pi].Components[ci].Product
			for li := range prod.BOM {
				add(prod.BOM[li].PartNumber)
			}
			for oi := range prod.OptionCategories {
				for vi := range prod.OptionCategories[oi].Options {
					opt := &prod.OptionCategories[oi].Options[vi]
					add(opt.PartNumber)
					for lpi := range opt.LinkedParts {
						add(opt.LinkedParts[lpi].PartNumber)
					}
				}
			}
		}
	}
	return numbers
}
