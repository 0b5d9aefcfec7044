package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createRequest struct {
	Amount         int64      `json:"amount"`
	Direction      string     `json:"direction"`
	Description    string     `json:"description"`
	RawDescription string     `json:"raw_description"`
	Date           string     `json:"date"`
	CategoryID     *uuid.UUID `json:"category_id"`
	AccountID      *uuid.UUID `json:"account_id"`
}

func (req createRequest) toParams() (ledger.CreateParams, error) {
	date, err := time.Parse(period.DayLayout, req.Date)
	if err != nil {
		return ledger.CreateParams{}, errors.New("date must be formatted as YYYY-MM-DD")
	}

	direction := ledger.Direction(req.Direction)
	if direction != ledger.DirectionDebit && direction != ledger.DirectionCredit {
		return ledger.CreateParams{}, errors.New("direction must be debit or credit")
	}

	if req.Amount <= 0 {
		return ledger.CreateParams{}, errors.New("amount must be positive")
	}

	return ledger.CreateParams{
		Amount:         req.Amount,
		Direction:      direction,
		Description:    req.Description,
		RawDescription: req.RawDescription,
		Date:           date,
		CategoryID:     req.CategoryID,
		AccountID:      req.AccountID,
	}, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.toParams()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		slog.Error("failed to create transaction", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

func filterFromQuery(r *http.Request) (ledger.ListFilter, error) {
	var filter ledger.ListFilter

	q := r.URL.Query()

	for name, dst := range map[string]**time.Time{
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}

		date, err := time.Parse(period.DayLayout, raw)
		if err != nil {
			return filter, errors.New(name + " must be formatted as YYYY-MM-DD")
		}

		*dst = &date
	}

	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("category_id must be a valid UUID")
		}

		filter.CategoryID = &id
	}

	if raw := q.Get("direction"); raw != "" {
		direction := ledger.Direction(raw)
		if direction != ledger.DirectionDebit && direction != ledger.DirectionCredit {
			return filter, errors.New("direction must be debit or credit")
		}

		filter.Direction = &direction
	}

	filter.Search = q.Get("search")

	return filter, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to get transaction", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to get transaction", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.toParams()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx.Amount = params.Amount
	tx.Direction = params.Direction
	tx.Description = params.Description
	tx.RawDescription = params.RawDescription
	tx.Date = params.Date
	tx.CategoryID = params.CategoryID
	tx.AccountID = params.AccountID

	if err := h.svc.Update(r.Context(), tx); err != nil {
		slog.Error("failed to update transaction", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to delete transaction", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}

	writeJSON(w, http.StatusOK, resp)
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon_name"`
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), req.Name, req.Icon)
	if err != nil {
		slog.Error("failed to create category", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
