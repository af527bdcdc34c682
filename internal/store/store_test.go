package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/nautilus/seacheck/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func insertTestUser(t *testing.T, s *Store, id, email string, hasLicense bool) {
	t.Helper()
	err := s.CreateUser(model.User{
		ID:                id,
		Email:             email,
		FirstName:         "Ola",
		LastName:          "Nordmann",
		BirthDate:         "01.01.1990",
		HasBoatingLicense: hasLicense,
	})
	if err != nil {
		t.Fatalf("insertTestUser: %v", err)
	}
}

func insertTestBoat(t *testing.T, s *Store, id, ownerID, name string, capacity int) {
	t.Helper()
	err := s.CreateBoat(model.Boat{
		ID: id, OwnerID: ownerID, Name: name, HP: 50, Capacity: capacity,
	})
	if err != nil {
		t.Fatalf("insertTestBoat: %v", err)
	}
}

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)

	count, err := s.UserCount()
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 users, got %d", count)
	}

	insertTestUser(t, s, "u1", "ola@example.no", true)

	u, err := s.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Email != "ola@example.no" {
		t.Errorf("expected email 'ola@example.no', got %q", u.Email)
	}
	if !u.HasBoatingLicense {
		t.Error("expected has_boating_license true")
	}

	byEmail, err := s.GetUserByEmail("ola@example.no")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != "u1" {
		t.Errorf("expected user u1, got %q", byEmail.ID)
	}

	_, err = s.GetUser("missing")
	if err != sql.ErrNoRows {
		t.Errorf("expected ErrNoRows, got %v", err)
	}

	u.FirstName = "Kari"
	u.HasBoatingLicense = false
	if err := s.UpdateUser(u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	u, _ = s.GetUser("u1")
	if u.FirstName != "Kari" || u.HasBoatingLicense {
		t.Errorf("update not applied: %+v", u)
	}
}

func TestBoatCRUD(t *testing.T) {
	s := newTestStore(t)
	insertTestUser(t, s, "u1", "ola@example.no", false)

	insertTestBoat(t, s, "b1", "u1", "Skarven", 4)
	insertTestBoat(t, s, "b2", "u1", "Albatross", 6)

	b, err := s.GetBoat("u1", "b1")
	if err != nil {
		t.Fatalf("GetBoat: %v", err)
	}
	if b.Name != "Skarven" || b.Capacity != 4 {
		t.Errorf("unexpected boat: %+v", b)
	}

	// Boats are keyed by owner; another user cannot read them.
	_, err = s.GetBoat("u2", "b1")
	if err != sql.ErrNoRows {
		t.Errorf("expected ErrNoRows for wrong owner, got %v", err)
	}

	boats, err := s.ListBoats("u1")
	if err != nil {
		t.Fatalf("ListBoats: %v", err)
	}
	if len(boats) != 2 {
		t.Fatalf("expected 2 boats, got %d", len(boats))
	}
	// Ordered by name.
	if boats[0].Name != "Albatross" {
		t.Errorf("expected Albatross first, got %q", boats[0].Name)
	}

	b.Capacity = 5
	if err := s.UpdateBoat(b); err != nil {
		t.Fatalf("UpdateBoat: %v", err)
	}
	b, _ = s.GetBoat("u1", "b1")
	if b.Capacity != 5 {
		t.Errorf("expected capacity 5, got %d", b.Capacity)
	}

	if err := s.DeleteBoat("u1", "b1"); err != nil {
		t.Fatalf("DeleteBoat: %v", err)
	}
	boats, _ = s.ListBoats("u1")
	if len(boats) != 1 {
		t.Errorf("expected 1 boat after delete, got %d", len(boats))
	}
}

func TestAssessmentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	insertTestUser(t, s, "u1", "ola@example.no", false)
	insertTestBoat(t, s, "b1", "u1", "Skarven", 4)

	a := model.Assessment{
		ID:         "a1",
		BoatID:     "b1",
		BoatName:   "Skarven",
		UserID:     "u1",
		Date:       "14.06.2025",
		Time:       "09:05",
		Score:      7,
		Passengers: 3,
		ChecklistResponses: map[int]bool{
			0: true, 1: false, 2: true,
		},
	}
	if err := s.SaveAssessment(a); err != nil {
		t.Fatalf("SaveAssessment: %v", err)
	}

	got, err := s.GetAssessment("a1")
	if err != nil {
		t.Fatalf("GetAssessment: %v", err)
	}
	if got.Score != 7 || got.Passengers != 3 {
		t.Errorf("unexpected assessment: %+v", got)
	}
	if len(got.ChecklistResponses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(got.ChecklistResponses))
	}
	if got.ChecklistResponses[1] {
		t.Error("expected response 1 to be false")
	}

	// Records are immutable; a duplicate save is rejected.
	if err := s.SaveAssessment(a); err == nil {
		t.Error("expected error saving duplicate assessment ID")
	}
}

func TestListAssessments(t *testing.T) {
	s := newTestStore(t)
	insertTestUser(t, s, "u1", "ola@example.no", false)
	insertTestBoat(t, s, "b1", "u1", "Skarven", 4)

	for _, id := range []string{"a1", "a2", "a3"} {
		boatID := "b1"
		if id == "a3" {
			boatID = "b2"
		}
		err := s.SaveAssessment(model.Assessment{
			ID: id, BoatID: boatID, BoatName: "Skarven", UserID: "u1",
			Date: "14.06.2025", Time: "09:05", Score: 1, Passengers: 1,
			ChecklistResponses: map[int]bool{0: true},
		})
		if err != nil {
			t.Fatalf("SaveAssessment(%s): %v", id, err)
		}
	}

	byUser, err := s.ListAssessmentsByUser("u1")
	if err != nil {
		t.Fatalf("ListAssessmentsByUser: %v", err)
	}
	if len(byUser) != 3 {
		t.Fatalf("expected 3 assessments, got %d", len(byUser))
	}
	// Newest first.
	if byUser[0].ID != "a3" {
		t.Errorf("expected a3 first, got %q", byUser[0].ID)
	}

	byBoat, err := s.ListAssessmentsByBoat("b1")
	if err != nil {
		t.Fatalf("ListAssessmentsByBoat: %v", err)
	}
	if len(byBoat) != 2 {
		t.Errorf("expected 2 assessments for b1, got %d", len(byBoat))
	}

	if err := s.DeleteAssessment("u1", "a1"); err != nil {
		t.Fatalf("DeleteAssessment: %v", err)
	}
	byUser, _ = s.ListAssessmentsByUser("u1")
	if len(byUser) != 2 {
		t.Errorf("expected 2 assessments after delete, got %d", len(byUser))
	}
}

func TestTripLifecycle(t *testing.T) {
	s := newTestStore(t)
	insertTestUser(t, s, "u1", "ola@example.no", false)

	trip := model.Trip{
		ID: "t1", UserID: "u1", BoatID: "b1", BoatName: "Skarven",
		AssessmentID: "a1", Status: model.TripOngoing, StartedAt: time.Now(),
	}
	if err := s.CreateTrip(trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	got, err := s.GetTrip("t1")
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if got.Status != model.TripOngoing {
		t.Errorf("expected ongoing trip, got %q", got.Status)
	}
	if got.EndedAt != nil {
		t.Error("expected nil ended_at")
	}

	if err := s.EndTrip("t1"); err != nil {
		t.Fatalf("EndTrip: %v", err)
	}
	got, _ = s.GetTrip("t1")
	if got.Status != model.TripEnded {
		t.Errorf("expected ended trip, got %q", got.Status)
	}
	if got.EndedAt == nil {
		t.Error("expected ended_at to be set")
	}

	trips, err := s.ListTripsByUser("u1")
	if err != nil {
		t.Fatalf("ListTripsByUser: %v", err)
	}
	if len(trips) != 1 {
		t.Errorf("expected 1 trip, got %d", len(trips))
	}
}

func TestDeleteUserData(t *testing.T) {
	s := newTestStore(t)
	insertTestUser(t, s, "u1", "ola@example.no", false)
	insertTestUser(t, s, "u2", "kari@example.no", false)
	insertTestBoat(t, s, "b1", "u1", "Skarven", 4)
	if err := s.SaveAssessment(model.Assessment{
		ID: "a1", BoatID: "b1", BoatName: "Skarven", UserID: "u1",
		Date: "14.06.2025", Time: "09:05", Score: 1, Passengers: 1,
		ChecklistResponses: map[int]bool{0: true},
	}); err != nil {
		t.Fatalf("SaveAssessment: %v", err)
	}

	if err := s.DeleteUserData("u1"); err != nil {
		t.Fatalf("DeleteUserData: %v", err)
	}

	if _, err := s.GetUser("u1"); err != sql.ErrNoRows {
		t.Errorf("expected user gone, got %v", err)
	}
	boats, _ := s.ListBoats("u1")
	if len(boats) != 0 {
		t.Errorf("expected no boats, got %d", len(boats))
	}
	assessments, _ := s.ListAssessmentsByUser("u1")
	if len(assessments) != 0 {
		t.Errorf("expected no assessments, got %d", len(assessments))
	}
	// Other users are untouched.
	if _, err := s.GetUser("u2"); err != nil {
		t.Errorf("u2 should still exist: %v", err)
	}
}

func TestExportAllAssessments(t *testing.T) {
	s := newTestStore(t)
	insertTestUser(t, s, "u1", "ola@example.no", false)
	insertTestUser(t, s, "u2", "kari@example.no", true)
	if err := s.SaveAssessment(model.Assessment{
		ID: "a1", BoatID: "b1", BoatName: "Skarven", UserID: "u2",
		Date: "14.06.2025", Time: "09:05", Score: 4, Passengers: 2,
		ChecklistResponses: map[int]bool{0: true, 1: false},
	}); err != nil {
		t.Fatalf("SaveAssessment: %v", err)
	}

	users, err := s.ExportAllAssessments()
	if err != nil {
		t.Fatalf("ExportAllAssessments: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	// Ordered by email.
	if users[0].Email != "kari@example.no" {
		t.Errorf("expected kari first, got %q", users[0].Email)
	}
	if len(users[0].Assessments) != 1 {
		t.Errorf("expected 1 assessment for kari, got %d", len(users[0].Assessments))
	}
	if len(users[1].Assessments) != 0 {
		t.Errorf("expected 0 assessments for ola, got %d", len(users[1].Assessments))
	}
}
