package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ashwinvk/spendlens/internal/http/analytics"
	"github.com/ashwinvk/spendlens/internal/http/budget"
	"github.com/ashwinvk/spendlens/internal/http/export"
	"github.com/ashwinvk/spendlens/internal/http/importcsv"
	"github.com/ashwinvk/spendlens/internal/http/transaction"
)

func New(
	analyticsV1 *analytics.Handler,
	budgetsV1 *budget.Handler,
	transactionsV1 *transaction.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/analytics", analyticsV1.Routes)

		r.Route("/budgets", func(r chi.Router) {
			budgetsV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Get("/categories", transactionsV1.ListCategories)
		r.Post("/categories", transactionsV1.CreateCategory)

		r.Route("/import", importV1.Routes)

		r.Route("/export", func(r chi.Router) {
			exportV1.Routes(r)
		})
	})

	return router
}
