package handlers

import (
	"errors"
	"net/http"

	"github.com/aluvista/pricing-app/internal/httpx"
	"github.com/aluvista/pricing-app/internal/services"
)

// QuoteHandler exposes customer quote generation from stored totals.
type QuoteHandler struct {
	Svc *services.QuoteService
}

func NewQuoteHandler(svc *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{Svc: svc}
}

// Generate: GET /projects/quote?id=N
func (h *QuoteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id, ok := queryID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	quote, err := h.Svc.GenerateQuote(id)
	if errors.Is(err, services.ErrProjectNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "quote_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}
