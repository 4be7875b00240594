package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aluvista/pricing-app/internal/config"
	"github.com/aluvista/pricing-app/internal/models"
)

// AllModels is the canonical migration order for AutoMigrate and test
// databases: catalog first, then products, then openings.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.MasterPart{}, &models.StockLengthRule{}, &models.PricingRule{}, &models.ExtrusionFinishPricing{},
		&models.Product{}, &models.ProductBOM{}, &models.OptionCategory{}, &models.ProductOption{}, &models.OptionVariant{}, &models.LinkedPart{},
		&models.Project{}, &models.Opening{}, &models.Panel{}, &models.ComponentInstance{}, &models.ComponentOption{},
	}
}

func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		log.Printf("Retrying DB connection: %v", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// Always print masked DSN once for diagnostics (before migrations for visibility)
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	log.Printf("[DB] Using DSN: %s", masked)
	// MIGRATIONS=1 runs the sql migrations via golang-migrate; otherwise keep the AutoMigrate fallback (dev convenience)
	if config.ParseBool("MIGRATIONS", false) {
		if err := RunMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range AllModels() {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"master_parts", "projects", "openings"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1
	if config.ParseBool("DB_SEED", false) {
		seed(db)
	}
	return db, nil
}

// seed loads a small starter catalog so a fresh development database can
// price something immediately.
func seed(db *gorm.DB) {
	cost := func(v float64) *float64 { return &v }
	baseParts := []models.MasterPart{
		{PartNumber: "EX-100", Description: "Frame jamb extrusion", PartType: models.PartTypeExtrusion, WeightPerFoot: 0.9, PricePerLb: 2.4, ProfilePerimeter: 7.5},
		{PartNumber: "EX-200", Description: "Door stile extrusion", PartType: models.PartTypeExtrusion, WeightPerFoot: 1.2, PricePerLb: 2.4, ProfilePerimeter: 9},
		{PartNumber: "HW-HINGE", Description: "Ball bearing hinge", PartType: models.PartTypeHardware, Cost: cost(11.5), UnitOfMeasure: "EA"},
		{PartNumber: "HW-SWEEP", Description: "Door sweep", PartType: models.PartTypeHardware, Cost: cost(1.8), UnitOfMeasure: "LF"},
		{PartNumber: "GL-CLR14", Description: "1/4 clear tempered glass", PartType: models.PartTypeGlass, UnitOfMeasure: "SF"},
		{PartNumber: "PK-CRATE", Description: "Shipping crate", PartType: models.PartTypePackaging, Cost: cost(45)},
	}
	for _, p := range baseParts {
		var existing models.MasterPart
		if err := db.Where("part_number = ?", p.PartNumber).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&p)
		}
	}
	finishes := []models.ExtrusionFinishPricing{
		{FinishName: "black", CostPerUnit: 0.85, Unit: "linear_foot"},
		{FinishName: "clear", CostPerUnit: 0.60, Unit: "linear_foot"},
		{FinishName: "bronze", CostPerUnit: 0.12, Unit: "square_foot"},
	}
	for _, f := range finishes {
		var existing models.ExtrusionFinishPricing
		if err := db.Where("finish_name = ?", f.FinishName).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&f)
		}
	}
}

