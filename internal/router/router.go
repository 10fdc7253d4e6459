package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wingden/loyalty-gateway/internal/api/middlewares"
)

type CustomRouter struct {
	router *chi.Mux
	logger *slog.Logger
}

func New(log *slog.Logger) *CustomRouter {
	return &CustomRouter{
		router: chi.NewRouter(),
		logger: log,
	}
}

type LoyaltyHandler interface {
	GetRewards(w http.ResponseWriter, r *http.Request)
	GetCustomers(w http.ResponseWriter, r *http.Request)
	GetPoints(w http.ResponseWriter, r *http.Request)
	RedeemPoints(w http.ResponseWriter, r *http.Request)
}

type CheckoutHandler interface {
	Checkout(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	NotifyRedemption(w http.ResponseWriter, r *http.Request)
}

type HealthHandler interface {
	Root(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
	NotFound(w http.ResponseWriter, r *http.Request)
}

type Handler interface {
	LoyaltyHandler
	CheckoutHandler
	WebhookHandler
	HealthHandler
}

func (cr *CustomRouter) SetRouter(h Handler) {
	if cr.logger != nil {
		cr.router.Use(middleware.RequestID)
		cr.router.Use(middlewares.Logging(cr.logger))
	}
	cr.router.Use(middlewares.CORS)

	cr.router.Get("/", h.Root)
	cr.router.Get("/health", h.Health)
	cr.router.Get("/customers", h.GetCustomers)
	cr.router.Get("/rewards", h.GetRewards)
	cr.router.Get("/points/{email}", h.GetPoints)

	cr.router.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/redeem-points", h.RedeemPoints)
		r.Post("/checkout", h.Checkout)
		r.Post("/notify-point-redemption", h.NotifyRedemption)
	})

	cr.router.NotFound(h.NotFound)
	cr.router.MethodNotAllowed(h.NotFound)
}

func (cr *CustomRouter) GetRouter() *chi.Mux {
	return cr.router
}
