package main

// Helper: go run ./cmd/server -reprice-openings
// Recalculates and persists the cached price of every opening, e.g. after a
// catalog-wide price update.

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/aluvista/pricing-app/internal/db"
	"github.com/aluvista/pricing-app/internal/models"
	"github.com/aluvista/pricing-app/internal/services"
)

var repriceFlag = flag.Bool("reprice-openings", false, "Recalculate all opening prices and exit")

func runRepriceOpenings() {
	_ = godotenv.Load()
	conn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	svc := services.NewPricingService(conn)
	var ids []uint
	if err := conn.Model(&models.Opening{}).Order("id").Pluck("id", &ids).Error; err != nil {
		log.Fatalf("list openings: %v", err)
	}
	updated := 0
	for _, id := range ids {
		if _, err := svc.CalculatePrice(id); err != nil {
			log.Printf("opening %d: %v", id, err)
			continue
		}
		updated++
	}
	log.Printf("Reprice done: %d/%d updated", updated, len(ids))
}
