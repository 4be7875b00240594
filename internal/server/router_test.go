package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aluvista/pricing-app/internal/auth"
	"github.com/aluvista/pricing-app/internal/db"
	"github.com/aluvista/pricing-app/internal/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{Email: "estimator@example.com", Password: string(hash), Name: "Estimator"}
	if err := conn.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func sessionCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	auth.CreateSession(rec, userID)
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie created")
	}
	return cookies[0]
}

func TestHealthz(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	h := New(conn)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestCalculateRequiresAuth(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	h := New(conn)

	r := httptest.NewRequest(http.MethodPost, "/openings/calculate?id=1", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestCalculateEndToEnd(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	user := seedUser(t, conn)

	// Minimal priceable opening: one hardware line on a fixed panel.
	part := models.MasterPart{PartNumber: "HW-HINGE", PartType: models.PartTypeHardware, Cost: floatPtr(12)}
	if err := conn.Create(&part).Error; err != nil {
		t.Fatalf("seed part: %v", err)
	}
	product := models.Product{
		Name: "Fixed Window",
		BOM:  []models.ProductBOM{{Position: 0, PartNumber: "HW-HINGE", PartType: models.PartTypeHardware, Quantity: 2}},
	}
	if err := conn.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	project := models.Project{Name: "Lot 7", CostingMethod: models.CostingFullStock}
	if err := conn.Create(&project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	opening := models.Opening{
		ProjectID: project.ID, Name: "Entry A",
		Panels: []models.Panel{{
			Type: models.PanelFixed, Width: 40, Height: 80,
			Components: []models.ComponentInstance{{ProductID: product.ID}},
		}},
	}
	if err := conn.Create(&opening).Error; err != nil {
		t.Fatalf("seed opening: %v", err)
	}

	h := New(conn)
	r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/openings/calculate?id=%d", opening.ID), nil)
	r.AddCookie(sessionCookie(t, user.ID))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		TotalPrice float64 `json:"totalPrice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if math.Abs(body.TotalPrice-24) > 1e-9 {
		t.Fatalf("total: got %v, want 24", body.TotalPrice)
	}

	var stored models.Opening
	if err := conn.First(&stored, opening.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if math.Abs(stored.Price-24) > 1e-9 {
		t.Fatalf("stored price: got %v, want 24", stored.Price)
	}
}

func TestCalculateMissingOpening(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	user := seedUser(t, conn)
	h := New(conn)

	r := httptest.NewRequest(http.MethodPost, "/openings/calculate?id=999", nil)
	r.AddCookie(sessionCookie(t, user.ID))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestQuoteEndpoint(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	project := models.Project{Name: "Lot 7", GlobalMarkup: 10}
	if err := conn.Create(&project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	opening := models.Opening{ProjectID: project.ID, Name: "Entry A", Price: 100, HardwareCost: 100}
	if err := conn.Create(&opening).Error; err != nil {
		t.Fatalf("seed opening: %v", err)
	}

	h := New(conn)
	r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/projects/quote?id=%d", project.ID), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var quote struct {
		Reference string  `json:"reference"`
		Total     float64 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &quote); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if quote.Reference == "" {
		t.Fatal("expected a quote reference")
	}
	if math.Abs(quote.Total-110) > 1e-9 {
		t.Fatalf("total: got %v, want 110", quote.Total)
	}
}

func TestListOpenings(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	project := models.Project{Name: "Lot 7"}
	if err := conn.Create(&project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	for _, name := range []string{"Entry A", "Entry B"} {
		o := models.Opening{ProjectID: project.ID, Name: name}
		if err := conn.Create(&o).Error; err != nil {
			t.Fatalf("seed opening: %v", err)
		}
	}

	h := New(conn)
	r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/openings?project_id=%d", project.ID), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var body struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 2 {
		t.Fatalf("expected 2 openings, got %d", body.Total)
	}
}

func floatPtr(v float64) *float64 { return &v }
