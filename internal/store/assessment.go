package store

import (
	"encoding/json"
	"fmt"

	"github.com/nautilus/seacheck/internal/model"
)

// SaveAssessment persists a completed risk assessment. Records are
// immutable; saving the same ID twice is an error.
func (s *Store) SaveAssessment(a model.Assessment) error {
	responses, err := json.Marshal(a.ChecklistResponses)
	if err != nil {
		return fmt.Errorf("marshal checklist responses: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO assessments (id, boat_id, boat_name, user_id, date, time, score, passengers, checklist_responses)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.BoatID, a.BoatName, a.UserID, a.Date, a.Time, a.Score, a.Passengers, string(responses),
	)
	return err
}

// GetAssessment returns an assessment by ID.
func (s *Store) GetAssessment(id string) (model.Assessment, error) {
	row := s.db.QueryRow(
		`SELECT id, boat_id, boat_name, user_id, date, time, score, passengers, checklist_responses
		 FROM assessments WHERE id = ?`, id,
	)
	return scanAssessment(row)
}

// ListAssessmentsByUser returns all assessments for a user, newest first.
func (s *Store) ListAssessmentsByUser(userID string) ([]model.Assessment, error) {
	return s.listAssessments(`user_id = ?`, userID)
}

// ListAssessmentsByBoat returns all assessments for a boat, newest first.
func (s *Store) ListAssessmentsByBoat(boatID string) ([]model.Assessment, error) {
	return s.listAssessments(`boat_id = ?`, boatID)
}

func (s *Store) listAssessments(where string, arg any) ([]model.Assessment, error) {
	rows, err := s.db.Query(
		`SELECT id, boat_id, boat_name, user_id, date, time, score, passengers, checklist_responses
		 FROM assessments WHERE `+where+` ORDER BY rowid DESC`, arg,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var assessments []model.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

// DeleteAssessment removes an assessment from a user's history.
func (s *Store) DeleteAssessment(userID, assessmentID string) error {
	_, err := s.db.Exec(`DELETE FROM assessments WHERE user_id = ? AND id = ?`, userID, assessmentID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (model.Assessment, error) {
	var a model.Assessment
	var responses string
	err := row.Scan(&a.ID, &a.BoatID, &a.BoatName, &a.UserID, &a.Date, &a.Time,
		&a.Score, &a.Passengers, &responses)
	if err != nil {
		return a, err
	}
	if err := json.Unmarshal([]byte(responses), &a.ChecklistResponses); err != nil {
		return a, fmt.Errorf("unmarshal checklist responses: %w", err)
	}
	return a, nil
}
