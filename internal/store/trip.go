package store

import (
	"time"

	"github.com/nautilus/seacheck/internal/model"
)

// CreateTrip records the start of a trip.
func (s *Store) CreateTrip(t model.Trip) error {
	_, err := s.db.Exec(
		`INSERT INTO trips (id, user_id, boat_id, boat_name, assessment_id, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.BoatID, t.BoatName, t.AssessmentID, t.Status, t.StartedAt,
	)
	return err
}

// GetTrip returns a trip by ID.
func (s *Store) GetTrip(id string) (model.Trip, error) {
	var t model.Trip
	err := s.db.QueryRow(
		`SELECT id, user_id, boat_id, boat_name, assessment_id, status, started_at, ended_at
		 FROM trips WHERE id = ?`, id,
	).Scan(&t.ID, &t.UserID, &t.BoatID, &t.BoatName, &t.AssessmentID, &t.Status, &t.StartedAt, &t.EndedAt)
	return t, err
}

// EndTrip marks a trip as ended.
func (s *Store) EndTrip(id string) error {
	now := time.Now()
	_, err := s.db.Exec(
		`UPDATE trips SET status = ?, ended_at = ? WHERE id = ?`,
		model.TripEnded, now, id,
	)
	return err
}

// ListTripsByUser returns a user's trips, newest first.
func (s *Store) ListTripsByUser(userID string) ([]model.Trip, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, boat_id, boat_name, assessment_id, status, started_at, ended_at
		 FROM trips WHERE user_id = ? ORDER BY started_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var trips []model.Trip
	for rows.Next() {
		var t model.Trip
		if err := rows.Scan(&t.ID, &t.UserID, &t.BoatID, &t.BoatName, &t.AssessmentID,
			&t.Status, &t.StartedAt, &t.EndedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}
