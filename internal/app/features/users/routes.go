// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for the user/receipt surface; it is mounted
// under /users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/all", h.ListUserIDs)
	r.Post("/", h.CreateUser)

	r.Get("/{userId}", h.GetUser)
	r.Get("/{userId}/years", h.Years)
	r.Get("/{userId}/quarters", h.Quarters)
	r.Get("/{userId}/receipts", h.ReceiptsByYear)
	r.Post("/{userId}/receipts", h.AddReceipt)
	r.Get("/{userId}/receipts/specific", h.ReceiptsByYearAndQuarter)
	r.Get("/{userId}/receipts/quarters/{range}", h.ReceiptsForQuarterRange)
	r.Get("/{userId}/tax/details", h.TaxDetails)

	return r
}
