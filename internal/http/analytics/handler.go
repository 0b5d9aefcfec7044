package analytics

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashwinvk/spendlens/internal/analytics"
	"github.com/ashwinvk/spendlens/internal/period"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.report)
	r.Get("/dashboard", h.dashboard)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("period")
	if token == "" {
		token = "6m"
	}

	includeTransfers := r.URL.Query().Get("include_capital_transfers") == "true"

	report, err := h.svc.Report(r.Context(), token, includeTransfers, time.Now().UTC())
	if err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("analytics report failed", "period", token, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(report); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = period.MonthKey(time.Now().UTC())
	}

	dashboard, err := h.svc.Dashboard(r.Context(), month, time.Now().UTC())
	if err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("dashboard failed", "month", month, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(dashboard); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
