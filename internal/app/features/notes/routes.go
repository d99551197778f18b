// internal/app/features/notes/routes.go
package notes

import "github.com/go-chi/chi/v5"

// Routes returns the /classrooms/{classroomID}/notes subrouter. Reading
// and posting notes is public; the important override is teacher only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Sessions.RequireRole("teacher"))
		pr.Patch("/{questionID}/important", h.HandleMarkImportant)
	})

	return r
}
