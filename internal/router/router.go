package router

import (
	"net/http"

	"usedmarket/internal/handler"
	"usedmarket/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Bookings   *handler.BookingHandler
	Payments   *handler.PaymentHandler
	Users      *handler.UserHandler
}

// Gates configures authorization on the route table.
type Gates struct {
	Tokens middleware.TokenVerifier
	Roles  middleware.RoleLookup
	// EnforceAdmin mounts the admin gate on catalogue and user management
	// routes. The bookings list is token-gated regardless.
	EnforceAdmin bool
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, gates Gates, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	authenticate := middleware.Authenticate(gates.Tokens, logger)
	admin := func(next http.HandlerFunc) http.Handler {
		if !gates.EnforceAdmin {
			return next
		}
		return authenticate(middleware.RequireAdmin(gates.Roles, logger)(next))
	}

	// Liveness check (plain text)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Used product server is running"))
	})

	r.Route("/products", func(r chi.Router) {
		r.Method(http.MethodPost, "/", admin(h.Products.Create))
		r.Get("/", h.Products.List)
		r.Get("/advertise/{email}", h.Products.ListAdvertised)
		r.Method(http.MethodPatch, "/advertise/{id}", admin(h.Products.Advertise))
		r.Get("/{name}", h.Products.ListByCategory)
		r.Method(http.MethodDelete, "/{id}", admin(h.Products.Delete))
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.Bookings.Create)
		r.With(authenticate).Get("/", h.Bookings.List)
		r.Get("/{id}", h.Bookings.GetByID)
	})

	r.Post("/create-payment-intent", h.Payments.CreateIntent)
	r.Post("/payments", h.Payments.Confirm)

	r.Get("/jwt", h.Users.IssueToken)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Users.Create)
		r.Method(http.MethodGet, "/", admin(h.Users.List))
		r.Get("/role/{email}", h.Users.GetRole)
		r.Method(http.MethodPatch, "/{id}", admin(h.Users.Verify))
		r.Method(http.MethodDelete, "/{id}", admin(h.Users.Delete))
	})

	r.Get("/productCategories", h.Categories.List)

	if !gates.EnforceAdmin {
		logger.Warn().Msg("admin authorization disabled, management routes are public")
	}

	return r
}
