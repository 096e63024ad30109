package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/earned-wage-access/internal/banklink"
	"github.com/frahmantamala/earned-wage-access/internal/employee"
	"github.com/frahmantamala/earned-wage-access/internal/session"
	"github.com/frahmantamala/earned-wage-access/internal/transport/middleware"
	"github.com/frahmantamala/earned-wage-access/internal/transport/swagger"
	"github.com/frahmantamala/earned-wage-access/internal/withdrawal"
)

type Handlers struct {
	Health     *HealthHandler
	Session    *session.Handler
	Employee   *employee.Handler
	BankLink   *banklink.Handler
	Withdrawal *withdrawal.Handler
}

type RouterConfig struct {
	AllowedOrigins string
	OpenAPISpec    []byte
	// Validator checks /api/v1 requests against OpenAPISpec; nil disables it.
	Validator func(http.Handler) http.Handler
}

func RegisterAllRoutes(router *chi.Mux, cfg RouterConfig, h Handlers, logger *slog.Logger) {
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID(logger))
	router.Use(middleware.Recovery)
	router.Use(middleware.LoggingMiddleware)

	if len(cfg.OpenAPISpec) > 0 {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(cfg.OpenAPISpec)
		})
		router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))
	}

	router.Route("/api/v1", func(r chi.Router) {
		if cfg.Validator != nil {
			r.Use(cfg.Validator)
		}

		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.BankLink != nil {
			r.Get("/banks", h.BankLink.ListBanks)
		}

		if h.Session == nil {
			return
		}

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/identify", h.Session.Identify)
			sr.Post("/verify", h.Session.Verify)
			sr.With(h.Session.AuthMiddleware).Post("/logout", h.Session.Logout)
		})

		// Protected routes that require an authenticated session
		r.Group(func(pr chi.Router) {
			pr.Use(h.Session.AuthMiddleware)

			if h.Employee != nil {
				pr.Get("/me", h.Employee.Me)
				pr.Get("/me/limit", h.Employee.Limit)
				pr.Get("/me/transactions", h.Employee.Transactions)
			}

			if h.Withdrawal != nil {
				pr.Get("/me/withdrawals/quote", h.Withdrawal.Quote)
				pr.Post("/me/withdrawals", h.Withdrawal.Withdraw)
			}

			if h.BankLink != nil {
				pr.Get("/bank-accounts/lookup", h.BankLink.LookupAccount)
				pr.Post("/me/bank-link", h.BankLink.LinkAccount)
			}
		})
	})
}
