package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aluvista/pricing-app/internal/models"
)

func setupAuthDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{Email: "estimator@example.com", Password: string(hash)}
	if err := conn.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return conn
}

func TestLoginJSON(t *testing.T) {
	conn := setupAuthDB(t, t.Name())
	h := NewAuthHandler(conn)
	mux := http.NewServeMux()
	h.Register(mux)

	body := strings.NewReader(`{"email":"estimator@example.com","password":"secret123"}`)
	r := httptest.NewRequest(http.MethodPost, "/login", body)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a session cookie on login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	conn := setupAuthDB(t, t.Name())
	h := NewAuthHandler(conn)
	mux := http.NewServeMux()
	h.Register(mux)

	body := strings.NewReader(`{"email":"estimator@example.com","password":"wrong"}`)
	r := httptest.NewRequest(http.MethodPost, "/login", body)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestLoginForm(t *testing.T) {
	conn := setupAuthDB(t, t.Name())
	h := NewAuthHandler(conn)
	mux := http.NewServeMux()
	h.Register(mux)

	body := strings.NewReader("email=estimator@example.com&password=secret123")
	r := httptest.NewRequest(http.MethodPost, "/login", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
}

func TestCalculateRejectsGet(t *testing.T) {
	h := &OpeningHandler{}
	r := httptest.NewRequest(http.MethodGet, "/openings/calculate?id=1", nil)
	w := httptest.NewRecorder()
	h.Calculate(w, r)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w.Code)
	}
}

func TestCalculateInvalidID(t *testing.T) {
	h := &OpeningHandler{}
	for _, q := range []string{"", "?id=abc", "?id=0", "?id=-3"} {
		r := httptest.NewRequest(http.MethodPost, "/openings/calculate"+q, nil)
		w := httptest.NewRecorder()
		h.Calculate(w, r)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400 got %d", q, w.Code)
		}
	}
}
