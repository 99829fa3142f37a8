// internal/app/features/transactions/routes.go
package transactions

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for the ledger; it is mounted under
// /transactions.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Insert)
	r.Delete("/", h.DeleteAll)
	return r
}
