package handler

import (
	"net/http"

	"github.com/Dan9191/mortgage-service/internal/config"
	"github.com/Dan9191/mortgage-service/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every route of the API
func NewRouter(h *Handler, cfg *config.Config, logger *logrus.Logger, limiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))

	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/rates/current", h.CurrentRate).Methods("GET")

	calc := r.PathPrefix("/calculator").Subrouter()
	calc.HandleFunc("/defaults", h.Defaults).Methods("GET")
	calc.HandleFunc("/breakdown", h.Breakdown).Methods("POST")
	calc.HandleFunc("/schedule", h.Schedule).Methods("POST")
	calc.HandleFunc("/sync", h.SyncDownPayment).Methods("POST")

	r.Handle("/leads", middleware.RateLimitMiddleware(limiter)(http.HandlerFunc(h.CreateLead))).Methods("POST")

	// Admin routes
	r.HandleFunc("/admin/login", h.Login).Methods("POST")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.HandleFunc("/leads", h.ListLeads).Methods("GET")

	return r
}
