package store

import (
	"time"

	"github.com/nautilus/seacheck/internal/model"
)

// CreateUser stores a user profile.
func (s *Store) CreateUser(u model.User) error {
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, first_name, last_name, birth_date, has_boating_license, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.BirthDate, u.HasBoatingLicense, time.Now(),
	)
	return err
}

// GetUser returns a user by ID.
func (s *Store) GetUser(id string) (model.User, error) {
	var u model.User
	err := s.db.QueryRow(
		`SELECT id, email, first_name, last_name, birth_date, has_boating_license, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.BirthDate, &u.HasBoatingLicense, &u.CreatedAt)
	return u, err
}

// GetUserByEmail returns a user by email address.
func (s *Store) GetUserByEmail(email string) (model.User, error) {
	var u model.User
	err := s.db.QueryRow(
		`SELECT id, email, first_name, last_name, birth_date, has_boating_license, created_at
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.BirthDate, &u.HasBoatingLicense, &u.CreatedAt)
	return u, err
}

// UpdateUser updates a user's profile fields.
func (s *Store) UpdateUser(u model.User) error {
	_, err := s.db.Exec(
		`UPDATE users SET first_name = ?, last_name = ?, birth_date = ?, has_boating_license = ? WHERE id = ?`,
		u.FirstName, u.LastName, u.BirthDate, u.HasBoatingLicense, u.ID,
	)
	return err
}

// DeleteUserData removes a user together with their boats, assessments,
// and trips.
func (s *Store) DeleteUserData(userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM assessments WHERE user_id = ?`,
		`DELETE FROM trips WHERE user_id = ?`,
		`DELETE FROM boats WHERE owner_id = ?`,
		`DELETE FROM users WHERE id = ?`,
	} {
		if _, err := tx.Exec(q, userID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UserCount returns the number of registered users.
func (s *Store) UserCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
