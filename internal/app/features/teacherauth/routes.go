// internal/app/features/teacherauth/routes.go
package teacherauth

import "github.com/go-chi/chi/v5"

// Routes returns the root-level auth routes: teacher signup plus the
// password login shared by teachers and TAs.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/teachers", h.HandleSignup)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	return r
}
