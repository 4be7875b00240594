package pricing

import (
	"testing"

	"github.com/aluvista/pricing-app/internal/models"
)

func TestCustomerPriceCategoryMarkup(t *testing.T) {
	totals := CategoryTotals{Extrusion: 100, Hardware: 50}
	project := &models.Project{MarkupExtrusion: 20, MarkupHardware: 10}

	q := CustomerPrice(totals, project)
	if !close2(q.MarkedUpExtrusion, 120) {
		t.Fatalf("extrusion: got %v, want 120", q.MarkedUpExtrusion)
	}
	if !close2(q.MarkedUpHardware, 55) {
		t.Fatalf("hardware: got %v, want 55", q.MarkedUpHardware)
	}
	if !close2(q.Subtotal, 175) {
		t.Fatalf("subtotal: got %v, want 175", q.Subtotal)
	}
	if !close2(q.Total, 175) {
		t.Fatalf("total: got %v, want 175", q.Total)
	}
}

func TestCustomerPriceGlobalFallback(t *testing.T) {
	totals := CategoryTotals{Glass: 200}
	project := &models.Project{GlobalMarkup: 25} // no glass markup set

	q := CustomerPrice(totals, project)
	if !close2(q.MarkedUpGlass, 250) {
		t.Fatalf("glass: got %v, want 250", q.MarkedUpGlass)
	}
}

func TestCustomerPriceHybridRemainderAddedBackVerbatim(t *testing.T) {
	// 100 of extrusion cost of which 30 is the at-cost HYBRID remainder:
	// only the 70 is marked up, the 30 passes through untouched.
	totals := CategoryTotals{Extrusion: 100, HybridRemaining: 30}
	project := &models.Project{MarkupExtrusion: 50}

	q := CustomerPrice(totals, project)
	if !close2(q.MarkedUpExtrusion, 105) {
		t.Fatalf("marked up extrusion: got %v, want 105", q.MarkedUpExtrusion)
	}
	if !close2(q.HybridRemaining, 30) {
		t.Fatalf("remainder: got %v, want 30", q.HybridRemaining)
	}
	if !close2(q.Total, 135) {
		t.Fatalf("total: got %v, want 135", q.Total)
	}
}

func TestCustomerPriceStandardOptionExempt(t *testing.T) {
	// The standard option's 10 sits inside the hardware bucket but is never
	// marked up; an upgrade is only marked up on the increment.
	totals := CategoryTotals{Hardware: 40, StandardOption: 10}
	project := &models.Project{MarkupHardware: 100}

	q := CustomerPrice(totals, project)
	if !close2(q.MarkedUpHardware, 60) {
		t.Fatalf("marked up hardware: got %v, want 60", q.MarkedUpHardware)
	}
	if !close2(q.Total, 70) {
		t.Fatalf("total: got %v, want 70", q.Total)
	}
}

func TestCustomerPriceDiscount(t *testing.T) {
	totals := CategoryTotals{Hardware: 100}
	project := &models.Project{MarkupHardware: 50, DiscountPercent: 10}

	q := CustomerPrice(totals, project)
	if !close2(q.MarkedUpHardware, 135) { // 100 * 1.5 * 0.9
		t.Fatalf("hardware: got %v, want 135", q.MarkedUpHardware)
	}
}

func TestCustomerPriceInstallationAndTaxOrdering(t *testing.T) {
	totals := CategoryTotals{Hardware: 100}
	project := &models.Project{InstallationCost: 50, TaxPercent: 10}

	q := CustomerPrice(totals, project)
	// Installation is added after markup; tax applies to subtotal plus
	// installation.
	if !close2(q.Subtotal, 100) {
		t.Fatalf("subtotal: got %v, want 100", q.Subtotal)
	}
	if !close2(q.Tax, 15) {
		t.Fatalf("tax: got %v, want 15", q.Tax)
	}
	if !close2(q.Total, 165) {
		t.Fatalf("total: got %v, want 165", q.Total)
	}
}

func TestCustomerPriceNilProject(t *testing.T) {
	totals := CategoryTotals{Other: 80}
	q := CustomerPrice(totals, nil)
	if !close2(q.Total, 80) {
		t.Fatalf("nil project means pass-through: got %v, want 80", q.Total)
	}
}
