package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewHandler(
	sessionHandler *SessionHandler,
	voteHandler *VoteHandler,
	paymentHandler *PaymentHandler,
	taskHandler *TaskHandler,
	contestantHandler *ContestantHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/google/callback", sessionHandler.GoogleCallback)
		r.Post("/refresh", sessionHandler.Refresh)
		r.Post("/logout", sessionHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", sessionHandler.GetSession)

		r.Get("/contestants", contestantHandler.List)
		r.Get("/prize-fund", contestantHandler.PrizeFund)

		r.Get("/schedule", taskHandler.Schedule)

		r.Route("/votes", func(r chi.Router) {
			r.Post("/", voteHandler.BuildIntent)
			r.Post("/direct", voteHandler.DirectSubmit)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/checkout", paymentHandler.CreateCheckout)
			r.Get("/checkout/callback", paymentHandler.CheckoutCallback)
			r.Post("/wallet", paymentHandler.WalletPay)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
