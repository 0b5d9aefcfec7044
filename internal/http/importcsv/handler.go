// Package importcsv exposes statement upload endpoints. Uploaded files are
// parsed, matched against learned categorisation rules and checked for
// duplicates before anything is written to the ledger.
package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/categorize"
	"github.com/ashwinvk/spendlens/internal/importer"
	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type Handler struct {
	importer   *importer.Service
	ledger     *ledger.Service
	categorize *categorize.Service
}

func NewHandler(imp *importer.Service, svc *ledger.Service, cat *categorize.Service) *Handler {
	return &Handler{importer: imp, ledger: svc, categorize: cat}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
	r.Post("/confirm", h.confirm)
	r.Post("/rules", h.createRule)
}

type rowResponse struct {
	Amount         int64            `json:"amount"`
	Direction      ledger.Direction `json:"direction"`
	Description    string           `json:"description"`
	RawDescription string           `json:"raw_description"`
	Date           string           `json:"date"`
	CategoryID     *uuid.UUID       `json:"category_id,omitempty"`
}

type conflictResponse struct {
	Incoming rowResponse `json:"incoming"`
	Existing uuid.UUID   `json:"existing_id"`
}

type uploadResponse struct {
	ImportedCount int                `json:"imported_count"`
	Pending       []rowResponse      `json:"pending,omitempty"`
	Conflicts     []conflictResponse `json:"conflicts,omitempty"`
}

func toRowResponse(p ledger.CreateParams) rowResponse {
	return rowResponse{
		Amount:         p.Amount,
		Direction:      p.Direction,
		Description:    p.Description,
		RawDescription: p.RawDescription,
		Date:           p.Date.Format(period.DayLayout),
		CategoryID:     p.CategoryID,
	}
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "a statement file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceGeneric
	}

	rows, err := h.importer.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i := range rows {
		if rows[i].CategoryID != nil {
			continue
		}

		categoryID, err := h.categorize.Suggest(r.Context(), rows[i].RawDescription)
		if err != nil {
			slog.Error("failed to suggest category", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		rows[i].CategoryID = categoryID
	}

	result, err := h.ledger.ImportBatch(r.Context(), rows)
	if err != nil {
		slog.Error("failed to import statement", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := uploadResponse{ImportedCount: len(result.Imported)}

	for _, p := range result.New {
		resp.Pending = append(resp.Pending, toRowResponse(p))
	}

	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictResponse{
			Incoming: toRowResponse(c.Incoming),
			Existing: c.Existing.ID,
		})
	}

	status := http.StatusCreated
	if len(resp.Conflicts) > 0 {
		status = http.StatusConflict
	}

	writeJSON(w, status, resp)
}

type confirmRequest struct {
	Rows []rowRequest `json:"rows"`
}

type rowRequest struct {
	Amount         int64      `json:"amount"`
	Direction      string     `json:"direction"`
	Description    string     `json:"description"`
	RawDescription string     `json:"raw_description"`
	Date           string     `json:"date"`
	CategoryID     *uuid.UUID `json:"category_id"`
}

func (req rowRequest) toParams() (ledger.CreateParams, error) {
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
	}, nil
}

// confirm inserts reviewed statement rows without duplicate checks. Clients
// call it after deciding which conflicted rows from an upload to keep.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]ledger.CreateParams, 0, len(req.Rows))

	for _, row := range req.Rows {
		p, err := row.toParams()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		params = append(params, p)
	}

	txs, err := h.ledger.CreateBatch(r.Context(), params)
	if err != nil {
		slog.Error("failed to confirm import", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{ImportedCount: len(txs)})
}

type createRuleRequest struct {
	Pattern    string    `json:"pattern"`
	CategoryID uuid.UUID `json:"category_id"`
}

func (h *Handler) createRule(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Pattern == "" {
		http.Error(w, "pattern is required", http.StatusBadRequest)
		return
	}

	if err := h.categorize.Learn(r.Context(), req.Pattern, req.CategoryID); err != nil {
		slog.Error("failed to create categorisation rule", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
