// Package transactions is the HTTP façade over the free-text transaction
// ledger: list details, insert, delete-all. It shares nothing with the user
// service beyond the database handle.
package transactions

import (
	"context"
	"encoding/json"
	"net/http"

	transactionstore "github.com/entrecabinet/cabinet/internal/app/store/transactions"
	"github.com/entrecabinet/cabinet/internal/app/system/timeouts"
	"github.com/entrecabinet/cabinet/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the dependencies for the ledger endpoints.
type Handler struct {
	store *transactionstore.Store
	log   *zap.Logger
}

// NewHandler constructs a transactions Handler backed by the given database.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store: transactionstore.New(db),
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

// List handles GET /transactions, returning every entry's detail text.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	details, err := h.store.ListDetails(ctx)
	if err != nil {
		h.log.Error("list transactions failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, details)
}

// Insert handles POST /transactions.
func (h *Handler) Insert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		http.Error(w, "Invalid transaction payload", http.StatusBadRequest)
		return
	}

	if _, err := h.store.Insert(ctx, tx); err != nil {
		h.log.Error("insert transaction failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, "AddedSuccessfully")
}

// DeleteAll handles DELETE /transactions, clearing the whole ledger.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.store.DeleteAll(ctx); err != nil {
		h.log.Error("delete transactions failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.log.Info("transaction ledger cleared")
	h.writeJSON(w, http.StatusOK, "DeletedSuccessfully")
}
