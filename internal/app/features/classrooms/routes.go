// internal/app/features/classrooms/routes.go
package classrooms

import "github.com/go-chi/chi/v5"

// Routes returns the /classroom subrouter. Code lookup is public so
// students can join a board; creating and listing require a teacher.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/code/{code}", h.ServeByCode)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Sessions.RequireRole("teacher"))
		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.ServeList)
	})

	return r
}
