// Package users is the HTTP façade over the user/receipt service: user
// registration and lookup, receipt appends, and the read projections over
// the nested income-receipt structure.
package users

import (
	"encoding/json"
	"net/http"

	userstore "github.com/entrecabinet/cabinet/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the dependencies for the user/receipt endpoints.
type Handler struct {
	store *userstore.Store
	log   *zap.Logger
}

// NewHandler constructs a users Handler backed by the given database.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store: userstore.New(db),
		log:   logger,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encoding response failed", zap.Error(err))
	}
}

func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	h.log.Error(op+" failed", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
