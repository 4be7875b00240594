package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/aluvista/pricing-app/internal/httpx"
	"github.com/aluvista/pricing-app/internal/models"
	"github.com/aluvista/pricing-app/internal/services"
)

// OpeningHandler exposes price calculation and cached-price listing.
type OpeningHandler struct {
	DB  *gorm.DB
	Svc *services.PricingService
}

func NewOpeningHandler(db *gorm.DB, svc *services.PricingService) *OpeningHandler {
	return &OpeningHandler{DB: db, Svc: svc}
}

// Calculate: POST /openings/calculate?id=N – recompute and persist one
// opening's price, returning the full breakdown.
func (h *OpeningHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id, ok := queryID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	breakdown, err := h.Svc.CalculatePrice(id)
	if errors.Is(err, services.ErrOpeningNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "opening_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "calculation_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, breakdown)
}

// List: GET /openings?project_id=N – openings with their cached prices.
func (h *OpeningHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	dbq := h.DB.Order("id")
	if v := r.URL.Query().Get("project_id"); v != "" {
		pid, err := strconv.Atoi(v)
		if err != nil || pid <= 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_project_id", nil)
			return
		}
		dbq = dbq.Where("project_id = ?", pid)
	}
	var openings []models.Opening
	if err := dbq.Find(&openings).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_openings", nil)
		return
	}
	httpx.JSONList(w, openings, len(openings))
}

func queryID(r *http.Request) (uint, bool) {
	v := r.URL.Query().Get("id")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return uint(n), true
}
