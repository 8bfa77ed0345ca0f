package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/petrolog/petrolog-be/internal/api/handlers"
	"github.com/petrolog/petrolog-be/internal/auth"
	"github.com/petrolog/petrolog-be/internal/config"
	"github.com/petrolog/petrolog-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	tokens *auth.TokenManager,
	users services.UserServiceProvider,
	records services.RecordServiceProvider,
	syncService services.SyncServiceProvider,
	statuses services.StatusServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, tokens)
	recordHandler := handlers.NewRecordHandler(records)
	syncHandler := handlers.NewSyncHandler(syncService)
	statusHandler := handlers.NewStatusHandler(statuses)

	requireAuth := auth.Middleware(tokens, users)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", statusHandler.Root)
		r.Post("/status", statusHandler.Create)
		r.Get("/status", statusHandler.GetAll)

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/auth/me", authHandler.GetMe)

			r.Route("/fuel-sales", func(r chi.Router) {
				r.Get("/", recordHandler.ListFuelSales)
				r.Post("/", recordHandler.CreateFuelSale)
			})
			r.Route("/credit-sales", func(r chi.Router) {
				r.Get("/", recordHandler.ListCreditSales)
				r.Post("/", recordHandler.CreateCreditSale)
			})
			r.Route("/income-expenses", func(r chi.Router) {
				r.Get("/", recordHandler.ListIncomeExpenses)
				r.Post("/", recordHandler.CreateIncomeExpense)
			})
			r.Route("/fuel-rates", func(r chi.Router) {
				r.Get("/", recordHandler.ListFuelRates)
				r.Post("/", recordHandler.CreateFuelRate)
			})

			r.Route("/sync", func(r chi.Router) {
				r.Post("/upload", syncHandler.Upload)
				r.Get("/download", syncHandler.Download)
				r.Post("/backup", syncHandler.Backup)
			})
		})
	})

	return r
}
