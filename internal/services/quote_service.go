package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aluvista/pricing-app/internal/models"
	"github.com/aluvista/pricing-app/internal/pricing"
)

var ErrProjectNotFound = errors.New("project_not_found")

// QuoteLine is one opening priced for the customer.
type QuoteLine struct {
	OpeningID   uint               `json:"opening_id"`
	OpeningName string             `json:"opening_name"`
	Cost        float64            `json:"cost"`
	Price       pricing.QuotePrice `json:"price"`
}

// Quote is the customer-facing quote of a project.
type Quote struct {
	Reference string      `json:"reference"`
	ProjectID uint        `json:"project_id"`
	Lines     []QuoteLine `json:"lines"`
	Total     float64     `json:"total"`
}

// QuoteService derives customer prices from the category cost snapshots
// stored on each opening. It never re-reads BOM data: pricing must have
// been calculated (and persisted) first.
type QuoteService struct {
	db *gorm.DB
}

func NewQuoteService(db *gorm.DB) *QuoteService { return &QuoteService{db: db} }

// GenerateQuote prices every opening of a project through the markup
// engine using the project's policy and the openings' stored totals.
func (s *QuoteService) GenerateQuote(projectID uint) (*Quote, error) {
	var project models.Project
	err := s.db.First(&project, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load project %d: %w", projectID, err)
	}

	var openings []models.Opening
	if err := s.db.Where("project_id = ?", projectID).Order("id").Find(&openings).Error; err != nil {
		return nil, fmt.Errorf("list openings: %w", err)
	}

	quote := &Quote{
		Reference: uuid.NewString(),
		ProjectID: projectID,
	}
	for _, o := range openings {
		totals := pricing.CategoryTotals{
			Extrusion:       o.ExtrusionCost,
			Hardware:        o.HardwareCost,
			Glass:           o.GlassCost,
			Packaging:       o.PackagingCost,
			Other:           o.OtherCost,
			StandardOption:  o.StandardOptionCost,
			HybridRemaining: o.HybridRemainingCost,
		}
		price := pricing.CustomerPrice(totals, &project)
		quote.Lines = append(quote.Lines, QuoteLine{
			OpeningID:   o.ID,
			OpeningName: o.Name,
			Cost:        o.Price,
			Price:       price,
		})
		quote.Total += price.Total
	}
	quote.Total = pricing.RoundCents(quote.Total)
	return quote, nil
}
