package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/budget"
	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{month}", h.monitor)
	r.Put("/{month}", h.save)
	r.Delete("/{month}", h.delete)
}

func (h *Handler) monitor(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	result, err := h.svc.Monitor(r.Context(), month, time.Now().UTC())
	if err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("budget monitor failed", "month", month, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type budgetEntryRequest struct {
	CategoryID uuid.UUID `json:"category_id"`
	Limit      int64     `json:"limit_amount"`
}

type savePlanRequest struct {
	Budgets []budgetEntryRequest `json:"budgets"`
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	var req savePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plan := &ledger.BudgetPlan{Month: month}
	for _, b := range req.Budgets {
		plan.Entries = append(plan.Entries, ledger.BudgetEntry{
			CategoryID: b.CategoryID,
			Limit:      b.Limit,
		})
	}

	if err := h.svc.Save(r.Context(), plan); err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	if err := h.svc.Delete(r.Context(), month); err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("budget delete failed", "month", month, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
