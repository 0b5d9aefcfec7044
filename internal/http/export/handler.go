package export

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashwinvk/spendlens/internal/export"
	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Buffer the CSV so a mid-export failure still yields a clean 500
	// instead of a truncated download.
	var buf bytes.Buffer

	if _, err := h.svc.Export(r.Context(), filter, &buf); err != nil {
		slog.Error("failed to export transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
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

	return filter, nil
}
