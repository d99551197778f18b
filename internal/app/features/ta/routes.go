// internal/app/features/ta/routes.go
package ta

import "github.com/go-chi/chi/v5"

// Routes returns the /ta subrouter. Registration and login are public;
// everything else requires an authenticated TA session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Sessions.RequireRole("ta"))
		pr.Post("/logout", h.HandleLogout)
		pr.Get("/profile", h.ServeProfile)
		pr.Get("/questions", h.ServeQuestions)
		pr.Get("/stats", h.ServeStats)
		pr.Post("/answer/{questionID}", h.HandleAnswer)
		pr.Put("/answer/{questionID}", h.HandleUpdateAnswer)
	})

	return r
}
