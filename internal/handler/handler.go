package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/mortgage"
	"github.com/Dan9191/mortgage-service/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type syncRequest struct {
	HomePrice          float64  `json:"homePrice"`
	DownPayment        *float64 `json:"downPayment"`
	DownPaymentPercent *float64 `json:"downPaymentPercent"`
}

type syncResponse struct {
	DownPayment        float64 `json:"downPayment"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Defaults returns the calculator's initial inputs
func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.DefaultInputs())
}

// Breakdown computes the monthly payment breakdown
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	var in models.LoanInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Calculate(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// Schedule returns the yearly amortization schedule
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var in models.LoanInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	years, err := h.svc.Amortize(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, years)
}

// SyncDownPayment converts between down payment amount and percent
func (h *Handler) SyncDownPayment(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	amount, percent, err := h.svc.SyncDownPayment(req.HomePrice, req.DownPayment, req.DownPaymentPercent)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, syncResponse{DownPayment: amount, DownPaymentPercent: percent})
}

// CreateLead handles the lead-capture form. The response body is always
// {"success": bool} so the page can show a generic message.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req models.LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]bool{"success": false})
		return
	}

	if _, err := h.svc.SubmitLead(r.Context(), req); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrLeadInvalid) {
			status = http.StatusBadRequest
		} else {
			h.log.Errorf("Failed to submit lead: %v", err)
		}
		h.writeJSON(w, status, map[string]bool{"success": false})
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// Login handles admin authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ListLeads returns recent leads to an authenticated admin
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	leads, err := h.svc.ListLeads(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, leads)
}

// CurrentRate returns the latest benchmark rate
func (h *Handler) CurrentRate(w http.ResponseWriter, r *http.Request) {
	rate, ok := h.svc.CurrentRate()
	if !ok {
		h.writeError(w, service.ErrRateUnavailable)
		return
	}
	h.writeJSON(w, http.StatusOK, rate)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *mortgage.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrRateUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		h.log.Errorf("Request failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Error encoding response: %v", err)
	}
}
