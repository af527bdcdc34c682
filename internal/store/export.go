package store

import (
	"github.com/nautilus/seacheck/internal/model"
)

// ExportAllAssessments collects every user's assessment history for the
// export command.
func (s *Store) ExportAllAssessments() ([]model.UserAssessments, error) {
	rows, err := s.db.Query(`SELECT id, email, first_name, last_name FROM users ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type userRow struct {
		id, email, first, last string
	}
	var users []userRow
	for rows.Next() {
		var u userRow
		if err := rows.Scan(&u.id, &u.email, &u.first, &u.last); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []model.UserAssessments
	for _, u := range users {
		assessments, err := s.ListAssessmentsByUser(u.id)
		if err != nil {
			return nil, err
		}
		out = append(out, model.UserAssessments{
			UserID:      u.id,
			Email:       u.email,
			DisplayName: u.first + " " + u.last,
			Assessments: assessments,
		})
	}
	return out, nil
}
