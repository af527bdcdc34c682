package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/nautilus/seacheck/internal/model"
	"github.com/nautilus/seacheck/internal/notify"
	"github.com/nautilus/seacheck/internal/risk"
	"github.com/nautilus/seacheck/internal/store"
)

// Handler holds shared dependencies for HTTP handlers, plus the
// registry of in-flight risk tests. Sessions live in memory only; a
// completed test's record is what gets persisted.
type Handler struct {
	store  *store.Store
	sms    notify.Sender
	config model.AppConfig

	mu    sync.Mutex
	tests map[string]*activeTest
}

// New creates a new Handler.
func New(s *store.Store, sms notify.Sender, cfg model.AppConfig) *Handler {
	return &Handler{
		store:  s,
		sms:    sms,
		config: cfg,
		tests:  make(map[string]*activeTest),
	}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/users", h.handleCreateUser)
	r.Get("/users/{userID}", h.handleGetUser)
	r.Put("/users/{userID}", h.handleUpdateUser)
	r.Delete("/users/{userID}", h.handleDeleteUser)

	r.Post("/users/{userID}/boats", h.handleCreateBoat)
	r.Get("/users/{userID}/boats", h.handleListBoats)
	r.Get("/users/{userID}/boats/{boatID}", h.handleGetBoat)
	r.Put("/users/{userID}/boats/{boatID}", h.handleUpdateBoat)
	r.Delete("/users/{userID}/boats/{boatID}", h.handleDeleteBoat)

	r.Get("/users/{userID}/assessments", h.handleListAssessments)
	r.Delete("/users/{userID}/assessments/{assessmentID}", h.handleDeleteAssessment)
	r.Get("/boats/{boatID}/assessments", h.handleListBoatAssessments)

	r.Get("/users/{userID}/trips", h.handleListTrips)
	r.Post("/trips/{tripID}/end", h.handleEndTrip)

	r.Post("/users/{userID}/boats/{boatID}/risk-test", h.handleStartTest)
	r.Get("/risk-test/{testID}", h.handleTestView)
	r.Post("/risk-test/{testID}/answer", h.handleAnswer)
	r.Post("/risk-test/{testID}/passengers", h.handleAdjustPassengers)
	r.Post("/risk-test/{testID}/passengers/confirm", h.handleConfirmPassengers)
	r.Post("/risk-test/{testID}/back", h.handleGoBack)
	r.Post("/risk-test/{testID}/jump", h.handleJumpTo)
	r.Post("/risk-test/{testID}/report", h.handleSendReport)
	r.Post("/risk-test/{testID}/trip", h.handleStartTrip)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// httpError maps domain errors onto HTTP status codes.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, risk.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, risk.ErrOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
