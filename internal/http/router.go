package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/Mdmuzammil18/invoice-app/internal/http/auth"
	invoiceHandler "github.com/Mdmuzammil18/invoice-app/internal/http/invoice"
)

func New(
	authV1 *authHandler.Handler,
	invoicesV1 *invoiceHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			r.Use(authV1.RequireToken)
			invoicesV1.Routes(r)
		})
	})

	return router
}
