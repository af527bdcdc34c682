package handler

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nautilus/seacheck/internal/i18n"
	"github.com/nautilus/seacheck/internal/model"
	"github.com/nautilus/seacheck/internal/notify"
	"github.com/nautilus/seacheck/internal/risk"
)

// activeTest is one in-flight risk test. Each test is driven by a
// single client flow; the mutex only serializes overlapping HTTP
// requests for the same test.
type activeTest struct {
	mu      sync.Mutex
	session *risk.Session
	userID  string
	boat    model.Boat

	// record is built exactly once on completion; saved flips when the
	// store accepts it. A failed save keeps the record so a later
	// request can retry without creating a second one.
	record *model.Assessment
	saved  bool
}

func (h *Handler) getTest(id string) (*activeTest, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	at, ok := h.tests[id]
	return at, ok
}

// questionView is one checklist entry as shown to the client.
type questionView struct {
	Index        int    `json:"index"`
	Key          string `json:"key"`
	Text         string `json:"text"`
	Answered     *bool  `json:"answered,omitempty"`
	Current      bool   `json:"current"`
	AutoAnswered bool   `json:"auto_answered,omitempty"`
}

// testView is the full state of a risk test returned by every
// state-changing endpoint.
type testView struct {
	TestID             string         `json:"test_id"`
	State              risk.State     `json:"state"`
	Cursor             int            `json:"cursor"`
	Total              int            `json:"total"`
	Questions          []questionView `json:"questions"`
	Passengers         int            `json:"passengers"`
	PassengerOverLimit bool           `json:"passenger_over_limit"`
	Score              int            `json:"score"`
	Level              risk.Level     `json:"level"`
	LevelText          string         `json:"level_text"`
	Complete           bool           `json:"complete"`
	AssessmentID       string         `json:"assessment_id,omitempty"`
	CanStartTrip       bool           `json:"can_start_trip"`
}

func (h *Handler) testViewFor(r *http.Request, id string, at *activeTest) testView {
	s := at.session
	answers := s.Answers()
	questions := s.Questions()
	hasLicense := false
	if u, err := h.store.GetUser(at.userID); err == nil {
		hasLicense = u.HasBoatingLicense
	}

	qvs := make([]questionView, len(questions))
	for i, q := range questions {
		qv := questionView{
			Index:   i,
			Key:     q.Key,
			Text:    i18n.T(r.Context(), q.Key),
			Current: i == s.Cursor() && !s.IsComplete(),
		}
		if v, ok := answers[i]; ok {
			ans := v
			qv.Answered = &ans
		}
		if q.License && hasLicense {
			qv.AutoAnswered = true
		}
		qvs[i] = qv
	}

	score := s.Score()
	level := risk.Classify(score, s.PassengerOverLimit())
	view := testView{
		TestID:             id,
		State:              s.State(),
		Cursor:             s.Cursor(),
		Total:              len(questions),
		Questions:          qvs,
		Passengers:         s.PassengerCount(),
		PassengerOverLimit: s.PassengerOverLimit(),
		Score:              score,
		Level:              level,
		LevelText:          i18n.T(r.Context(), string(level)),
		Complete:           s.IsComplete(),
		CanStartTrip:       s.IsComplete() && !s.PassengerOverLimit(),
	}
	if at.record != nil {
		view.AssessmentID = at.record.ID
	}
	return view
}

// ensureSaved builds and persists the assessment record once the
// session is complete. Building happens at most once per session; a
// persistence failure leaves the record in place for a retry.
func (h *Handler) ensureSaved(at *activeTest) error {
	if !at.session.IsComplete() {
		return nil
	}
	if at.record == nil {
		rec, err := at.session.BuildRecord(at.userID, at.boat, time.Now())
		if err != nil {
			return err
		}
		at.record = &rec
	}
	if at.saved {
		return nil
	}
	if err := h.store.SaveAssessment(*at.record); err != nil {
		slog.Error("save assessment", "assessment", at.record.ID, "error", err)
		return err
	}
	at.saved = true
	slog.Info("assessment saved",
		"assessment", at.record.ID,
		"user", at.userID,
		"boat", at.boat.ID,
		"score", at.record.Score,
	)
	return nil
}

func (h *Handler) handleStartTest(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userID")
	boatID := urlParam(r, "boatID")

	user, err := h.store.GetUser(userID)
	if err != nil {
		httpError(w, err)
		return
	}
	boat, err := h.store.GetBoat(userID, boatID)
	if err != nil {
		httpError(w, err)
		return
	}

	at := &activeTest{
		session: risk.NewSession(risk.Catalog(), user.HasBoatingLicense, boat.Capacity),
		userID:  userID,
		boat:    boat,
	}
	id := uuid.NewString()
	h.mu.Lock()
	h.tests[id] = at
	h.mu.Unlock()

	slog.Info("risk test started", "test", id, "user", userID, "boat", boatID)
	respondJSON(w, http.StatusCreated, h.testViewFor(r, id, at))
}

func (h *Handler) handleTestView(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "testID")
	at, ok := h.getTest(id)
	if !ok {
		http.Error(w, "unknown risk test", http.StatusNotFound)
		return
	}
	at.mu.Lock()
	defer at.mu.Unlock()

	// Retry persistence here if an earlier attempt failed.
	if err := h.ensureSaved(at); err != nil {
		slog.Warn("assessment save retry failed", "test", id, "error", err)
	}
	respondJSON(w, http.StatusOK, h.testViewFor(r, id, at))
}

// withTest runs fn on the named test under its lock and responds with
// the updated view, persisting the record when fn completes the test.
func (h *Handler) withTest(w http.ResponseWriter, r *http.Request, fn func(*activeTest) error) {
	id := urlParam(r, "testID")
	at, ok := h.getTest(id)
	if !ok {
		http.Error(w, "unknown risk test", http.StatusNotFound)
		return
	}
	at.mu.Lock()
	defer at.mu.Unlock()

	if err := fn(at); err != nil {
		httpError(w, err)
		return
	}
	if err := h.ensureSaved(at); err != nil {
		slog.Warn("assessment not yet persisted", "test", id, "error", err)
	}
	respondJSON(w, http.StatusOK, h.testViewFor(r, id, at))
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer bool `json:"answer"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	h.withTest(w, r, func(at *activeTest) error {
		return at.session.Answer(req.Answer)
	})
}

func (h *Handler) handleAdjustPassengers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Delta != 1 && req.Delta != -1 {
		http.Error(w, "delta must be +1 or -1", http.StatusBadRequest)
		return
	}
	h.withTest(w, r, func(at *activeTest) error {
		return at.session.AdjustPassengerCount(req.Delta)
	})
}

func (h *Handler) handleConfirmPassengers(w http.ResponseWriter, r *http.Request) {
	h.withTest(w, r, func(at *activeTest) error {
		return at.session.ConfirmPassengerCount()
	})
}

func (h *Handler) handleGoBack(w http.ResponseWriter, r *http.Request) {
	h.withTest(w, r, func(at *activeTest) error {
		at.session.GoBack()
		return nil
	})
}

func (h *Handler) handleJumpTo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	h.withTest(w, r, func(at *activeTest) error {
		return at.session.JumpTo(req.Index)
	})
}

func (h *Handler) handleSendReport(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "testID")
	at, ok := h.getTest(id)
	if !ok {
		http.Error(w, "unknown risk test", http.StatusNotFound)
		return
	}

	var req struct {
		Phone string `json:"phone"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Phone == "" {
		http.Error(w, "phone is required", http.StatusBadRequest)
		return
	}

	at.mu.Lock()
	s := at.session
	answers := s.Answers()
	questions := s.Questions()
	var noKeys []string
	for i, q := range questions {
		if v, ok := answers[i]; ok && !v && !q.Passenger {
			noKeys = append(noKeys, q.Key)
		}
	}
	report := notify.SafetyReport{
		Score:      s.Score(),
		Passengers: s.PassengerCount(),
		NoKeys:     noKeys,
	}
	at.mu.Unlock()

	if err := h.sms.Send(r.Context(), req.Phone, report.Format(r.Context())); err != nil {
		httpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handler) handleStartTrip(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "testID")
	at, ok := h.getTest(id)
	if !ok {
		http.Error(w, "unknown risk test", http.StatusNotFound)
		return
	}
	at.mu.Lock()
	defer at.mu.Unlock()

	if !at.session.IsComplete() {
		http.Error(w, "risk test not complete", http.StatusConflict)
		return
	}
	// Hard business rule: over capacity blocks the trip, regardless of
	// how the rest of the checklist went.
	if at.session.PassengerOverLimit() {
		msg := i18n.Td(r.Context(), "boatCapacityLimit", map[string]any{"Capacity": at.boat.Capacity})
		http.Error(w, msg, http.StatusConflict)
		return
	}
	if err := h.ensureSaved(at); err != nil {
		httpError(w, err)
		return
	}

	trip := model.Trip{
		ID:           uuid.NewString(),
		UserID:       at.userID,
		BoatID:       at.boat.ID,
		BoatName:     at.boat.Name,
		AssessmentID: at.record.ID,
		Status:       model.TripOngoing,
		StartedAt:    time.Now(),
	}
	if err := h.store.CreateTrip(trip); err != nil {
		httpError(w, err)
		return
	}
	slog.Info("trip started", "trip", trip.ID, "user", at.userID, "boat", at.boat.ID)
	respondJSON(w, http.StatusCreated, trip)
}
