package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/entrecabinet/cabinet/internal/app/store/users"
	"github.com/entrecabinet/cabinet/internal/app/system/timeouts"
	"github.com/entrecabinet/cabinet/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ListUserIDs handles GET /users/all.
// 200 with every userId, or 404 when the collection is empty.
func (h *Handler) ListUserIDs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ids, err := h.store.ListUserIDs(ctx)
	if err != nil {
		h.serverError(w, "list user ids", err)
		return
	}
	if len(ids) == 0 {
		http.Error(w, "No users found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, ids)
}

// GetUser handles GET /users/{userId}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	userID := chi.URLParam(r, "userId")
	u, err := h.store.GetByUserID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, "get user", err)
		return
	}
	h.writeJSON(w, http.StatusOK, u)
}

// CreateUser handles POST /users.
// 201 with the stored record and a Location header pointing at its lookup
// route; 409 when the userId is already taken.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, "Invalid user payload", http.StatusBadRequest)
		return
	}

	created, err := h.store.Create(ctx, u)
	if err == userstore.ErrDuplicateUserID {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		h.serverError(w, "create user", err)
		return
	}

	h.log.Info("user created",
		zap.String("user_id", created.UserID),
		zap.String("id", created.ID.Hex()))

	w.Header().Set("Location", "/users/"+created.UserID)
	h.writeJSON(w, http.StatusCreated, created)
}

// TaxDetails handles GET /users/{userId}/tax/details.
func (h *Handler) TaxDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	userID := chi.URLParam(r, "userId")
	details, err := h.store.TaxPaymentDetails(ctx, userID)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "No tax payment details found for this user or user does not exist", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, "get tax payment details", err)
		return
	}
	h.writeJSON(w, http.StatusOK, details)
}
