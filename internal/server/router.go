package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/aluvista/pricing-app/internal/auth"
	"github.com/aluvista/pricing-app/internal/handlers"
	"github.com/aluvista/pricing-app/internal/httpx"
	"github.com/aluvista/pricing-app/internal/models"
	"github.com/aluvista/pricing-app/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// Configure a user verifier so RequireAuth can ensure the user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	// Opening pricing endpoints. Recalculation mutates the cached price, so
	// it sits behind auth; reads are open.
	pricingSvc := services.NewPricingService(db)
	oh := handlers.NewOpeningHandler(db, pricingSvc)
	mux.Handle("/openings", auth.Middleware(http.HandlerFunc(oh.List)))
	mux.Handle("/openings/calculate", auth.Middleware(auth.RequireAuth(http.HandlerFunc(oh.Calculate))))

	// Quote endpoints
	quoteSvc := services.NewQuoteService(db)
	qh := handlers.NewQuoteHandler(quoteSvc)
	mux.Handle("/projects/quote", auth.Middleware(http.HandlerFunc(qh.Generate)))

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
