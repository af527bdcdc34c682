package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nautilus/seacheck/internal/model"
)

type userRequest struct {
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	BirthDate         string `json:"birth_date"`
	HasBoatingLicense bool   `json:"has_boating_license"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	u := model.User{
		ID:                uuid.NewString(),
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		BirthDate:         req.BirthDate,
		HasBoatingLicense: req.HasBoatingLicense,
	}
	if err := h.store.CreateUser(u); err != nil {
		httpError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUser(urlParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUser(urlParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.BirthDate = req.BirthDate
	u.HasBoatingLicense = req.HasBoatingLicense
	if err := h.store.UpdateUser(u); err != nil {
		httpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteUserData(urlParam(r, "userID")); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type boatRequest struct {
	Name     string `json:"name"`
	HP       int    `json:"hp"`
	Capacity int    `json:"capacity"`
}

func (h *Handler) handleCreateBoat(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userID")
	if _, err := h.store.GetUser(userID); err != nil {
		httpError(w, err)
		return
	}

	var req boatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Capacity < 1 {
		http.Error(w, "capacity must be at least 1", http.StatusBadRequest)
		return
	}

	b := model.Boat{
		ID:       uuid.NewString(),
		OwnerID:  userID,
		Name:     req.Name,
		HP:       req.HP,
		Capacity: req.Capacity,
	}
	if err := h.store.CreateBoat(b); err != nil {
		httpError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (h *Handler) handleListBoats(w http.ResponseWriter, r *http.Request) {
	boats, err := h.store.ListBoats(urlParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	if boats == nil {
		boats = []model.Boat{}
	}
	respondJSON(w, http.StatusOK, boats)
}

func (h *Handler) handleGetBoat(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.GetBoat(urlParam(r, "userID"), urlParam(r, "boatID"))
	if err != nil {
		httpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) handleUpdateBoat(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.GetBoat(urlParam(r, "userID"), urlParam(r, "boatID"))
	if err != nil {
		httpError(w, err)
		return
	}
	var req boatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Capacity < 1 {
		http.Error(w, "capacity must be at least 1", http.StatusBadRequest)
		return
	}
	b.Name = req.Name
	b.HP = req.HP
	b.Capacity = req.Capacity
	if err := h.store.UpdateBoat(b); err != nil {
		httpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) handleDeleteBoat(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteBoat(urlParam(r, "userID"), urlParam(r, "boatID")); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.store.ListAssessmentsByUser(urlParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	if assessments == nil {
		assessments = []model.Assessment{}
	}
	respondJSON(w, http.StatusOK, assessments)
}

func (h *Handler) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteAssessment(urlParam(r, "userID"), urlParam(r, "assessmentID"))
	if err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListBoatAssessments(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.store.ListAssessmentsByBoat(urlParam(r, "boatID"))
	if err != nil {
		httpError(w, err)
		return
	}
	if assessments == nil {
		assessments = []model.Assessment{}
	}
	respondJSON(w, http.StatusOK, assessments)
}

func (h *Handler) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.store.ListTripsByUser(urlParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	if trips == nil {
		trips = []model.Trip{}
	}
	respondJSON(w, http.StatusOK, trips)
}

func (h *Handler) handleEndTrip(w http.ResponseWriter, r *http.Request) {
	tripID := urlParam(r, "tripID")
	if _, err := h.store.GetTrip(tripID); err != nil {
		httpError(w, err)
		return
	}
	if err := h.store.EndTrip(tripID); err != nil {
		httpError(w, err)
		return
	}
	trip, err := h.store.GetTrip(tripID)
	if err != nil {
		httpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}
