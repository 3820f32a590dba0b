package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

// Response is the standard JSON envelope for all API responses.
type Response struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// Service is the shared billing service used by all handlers.
var Service *billing.Service

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Data: data})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: msg})
}

// writeServiceError maps a billing error to its HTTP status. Persistence
// failures are logged and reported without their cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, billing.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, billing.ErrAuthorization):
		status = http.StatusForbidden
	case errors.Is(err, billing.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, billing.ErrState):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(w, status, billing.Message(err))
}

// BasicAuth is middleware that enforces HTTP Basic Authentication.
func BasicAuth(user, pass string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		// If no credentials are configured, skip auth
		if user == "" && pass == "" {
			slog.Warn("AUTH_USER and AUTH_PASS not set, API is unauthenticated")
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok || u != user || p != pass {
				w.Header().Set("WWW-Authenticate", `Basic realm="gstbill"`)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type companyKey struct{}

// CompanyHeader carries the ID of the company the caller acts for.
const CompanyHeader = "X-Company-ID"

// CompanyScope reads the caller's company from CompanyHeader.
func CompanyScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(CompanyHeader)), 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, CompanyHeader+" header is required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), companyKey{}, id)))
	})
}

func companyID(r *http.Request) int64 {
	id, _ := r.Context().Value(companyKey{}).(int64)
	return id
}

// pathID parses a numeric URL parameter, writing a 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// dateRange reads the from and to query parameters. Both are optional
// unless required is set.
func dateRange(w http.ResponseWriter, r *http.Request, required bool) (*models.DateRange, bool) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" && to == "" && !required {
		return nil, true
	}
	var dr models.DateRange
	var err error
	if from != "" {
		if dr.From, err = models.ParseDate(from); err != nil {
			writeError(w, http.StatusBadRequest, "from must be a date (YYYY-MM-DD)")
			return nil, false
		}
	}
	if to != "" {
		if dr.To, err = models.ParseDate(to); err != nil {
			writeError(w, http.StatusBadRequest, "to must be a date (YYYY-MM-DD)")
			return nil, false
		}
	}
	return &dr, true
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}
