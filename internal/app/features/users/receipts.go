package users

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/entrecabinet/cabinet/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// quarterRange maps the canonical cumulative-range path segment to the
// number of quarters it covers.
var quarterRange = map[string]int{"Q1": 1, "Q2": 2, "Q3": 3, "Q4": 4}

func yearParam(r *http.Request) (int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	return year, err == nil
}

// Years handles GET /users/{userId}/years.
// 404 both when the user is absent and when they have no receipt years.
func (h *Handler) Years(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	userID := chi.URLParam(r, "userId")
	years, err := h.store.YearsForUser(ctx, userID)
	if err != nil && err != mongo.ErrNoDocuments {
		h.serverError(w, "get years", err)
		return
	}
	if err == mongo.ErrNoDocuments || len(years) == 0 {
		http.Error(w, "No years found for this user or user does not exist", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, years)
}

// Quarters handles GET /users/{userId}/quarters?year=N.
func (h *Handler) Quarters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	year, ok := yearParam(r)
	if !ok {
		http.Error(w, "Invalid or missing year", http.StatusBadRequest)
		return
	}

	userID := chi.URLParam(r, "userId")
	names, err := h.store.QuartersByYear(ctx, userID, year)
	if err != nil && err != mongo.ErrNoDocuments {
		h.serverError(w, "get quarters", err)
		return
	}
	if err == mongo.ErrNoDocuments || len(names) == 0 {
		http.Error(w, "No quarters found for the specified year or user does not exist", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, names)
}

// ReceiptsByYear handles GET /users/{userId}/receipts?year=N, returning the
// full Quarter list for that year.
func (h *Handler) ReceiptsByYear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	year, ok := yearParam(r)
	if !ok {
		http.Error(w, "Invalid or missing year", http.StatusBadRequest)
		return
	}

	userID := chi.URLParam(r, "userId")
	quarters, err := h.store.ReceiptsByYear(ctx, userID, year)
	if err != nil && err != mongo.ErrNoDocuments {
		h.serverError(w, "get receipts by year", err)
		return
	}
	if err == mongo.ErrNoDocuments || len(quarters) == 0 {
		http.Error(w, "No receipts found for the specified year or user does not exist", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, quarters)
}

// ReceiptsByYearAndQuarter handles GET /users/{userId}/receipts/specific
// with year and quarter query parameters. The quarter is matched verbatim;
// values outside Q1..Q4 simply never match.
func (h *Handler) ReceiptsByYearAndQuarter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	year, ok := yearParam(r)
	if !ok {
		http.Error(w, "Invalid or missing year", http.StatusBadRequest)
		return
	}
	quarter := r.URL.Query().Get("quarter")

	userID := chi.URLParam(r, "userId")
	lines, err := h.store.ReceiptsByYearAndQuarter(ctx, userID, year, quarter)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "No receipts found for the specified quarter or user does not exist", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, "get receipts by quarter", err)
		return
	}
	h.writeJSON(w, http.StatusOK, lines)
}

// ReceiptsForQuarterRange handles
// GET /users/{userId}/receipts/quarters/{range}?year=N where {range} is one
// of Q1..Q4, returning the cumulative line list for quarters 1..n.
func (h *Handler) ReceiptsForQuarterRange(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, ok := quarterRange[chi.URLParam(r, "range")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	year, ok := yearParam(r)
	if !ok {
		http.Error(w, "Invalid or missing year", http.StatusBadRequest)
		return
	}

	userID := chi.URLParam(r, "userId")
	lines, err := h.store.ReceiptsForQuarterRange(ctx, userID, year, n)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "No receipts found for the specified year or user does not exist", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, "get receipts for quarter range", err)
		return
	}
	h.writeJSON(w, http.StatusOK, lines)
}

// AddReceipt handles POST /users/{userId}/receipts?year=N&quarter=Qx with
// the receipt line in the body, either as a bare JSON string or raw text.
// 200 on success; 400 when the store reports no modification (user absent).
func (h *Handler) AddReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	year, ok := yearParam(r)
	if !ok {
		http.Error(w, "Invalid or missing year", http.StatusBadRequest)
		return
	}
	quarter := r.URL.Query().Get("quarter")

	line, err := readLine(r.Body)
	if err != nil || line == "" {
		http.Error(w, "Invalid or missing receipt body", http.StatusBadRequest)
		return
	}

	userID := chi.URLParam(r, "userId")
	added, err := h.store.AppendReceipt(ctx, userID, year, quarter, line)
	if err != nil {
		h.serverError(w, "add receipt", err)
		return
	}
	if !added {
		http.Error(w, "Failed to add receipt", http.StatusBadRequest)
		return
	}

	h.log.Info("receipt added",
		zap.String("user_id", userID),
		zap.Int("year", year),
		zap.String("quarter", quarter))

	h.writeJSON(w, http.StatusOK, "Receipt added successfully")
}

// readLine accepts the receipt line as a JSON string ("\"rent\"") or raw
// text, mirroring how existing clients post it.
func readLine(body io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err == nil {
			return s, nil
		}
	}
	return text, nil
}
