package accounts

import (
	"github.com/go-chi/chi/v5"

	"github.com/nexuscampus/authcore/pkg/requestid"
)

// Router assembles the account routes. Kind-scoped routes share a single
// parameterized tree; the /me route is mounted once per kind so the guard
// can pin the session kind to the route.
func Router(h *Handler, guard *Guard) chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Route("/accounts", func(r chi.Router) {
		r.Route("/{kind}", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.Post("/verify", h.Verify)
			r.Post("/verify/resend", h.ResendVerification)
		})

		r.Route("/password", func(r chi.Router) {
			r.Post("/forgot", h.ForgotPassword)
			r.Post("/reset", h.ResetPassword)
		})

		r.Post("/logout", h.Logout)

		r.With(guard.RequireKind(KindInstitute)).Get("/institute/me", h.Me)
		r.With(guard.RequireKind(KindStudent)).Get("/student/me", h.Me)
	})

	return r
}
