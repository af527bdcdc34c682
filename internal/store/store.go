package store

import (
	"database/sql"
	"fmt"

	"github.com/nautilus/seacheck/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		birth_date TEXT NOT NULL DEFAULT '',
		has_boating_license INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS boats (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		hp INTEGER NOT NULL DEFAULT 0,
		capacity INTEGER NOT NULL DEFAULT 1,
		FOREIGN KEY (owner_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		boat_id TEXT NOT NULL,
		boat_name TEXT NOT NULL,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		score INTEGER NOT NULL,
		passengers INTEGER NOT NULL DEFAULT 1,
		checklist_responses TEXT NOT NULL DEFAULT '{}',
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		boat_id TEXT NOT NULL,
		boat_name TEXT NOT NULL,
		assessment_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'ongoing',
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateBoat registers a boat to a user.
func (s *Store) CreateBoat(b model.Boat) error {
	_, err := s.db.Exec(
		`INSERT INTO boats (id, owner_id, name, hp, capacity) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.OwnerID, b.Name, b.HP, b.Capacity,
	)
	return err
}

// GetBoat returns a boat by owner and ID.
func (s *Store) GetBoat(ownerID, boatID string) (model.Boat, error) {
	var b model.Boat
	err := s.db.QueryRow(
		`SELECT id, owner_id, name, hp, capacity FROM boats WHERE owner_id = ? AND id = ?`,
		ownerID, boatID,
	).Scan(&b.ID, &b.OwnerID, &b.Name, &b.HP, &b.Capacity)
	return b, err
}

// ListBoats returns all boats owned by a user.
func (s *Store) ListBoats(ownerID string) ([]model.Boat, error) {
	rows, err := s.db.Query(
		`SELECT id, owner_id, name, hp, capacity FROM boats WHERE owner_id = ? ORDER BY name`, ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var boats []model.Boat
	for rows.Next() {
		var b model.Boat
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.HP, &b.Capacity); err != nil {
			return nil, err
		}
		boats = append(boats, b)
	}
	return boats, rows.Err()
}

// UpdateBoat updates a boat's name, horsepower, and capacity.
func (s *Store) UpdateBoat(b model.Boat) error {
	_, err := s.db.Exec(
		`UPDATE boats SET name = ?, hp = ?, capacity = ? WHERE owner_id = ? AND id = ?`,
		b.Name, b.HP, b.Capacity, b.OwnerID, b.ID,
	)
	return err
}

// DeleteBoat removes a boat from a user's account.
func (s *Store) DeleteBoat(ownerID, boatID string) error {
	_, err := s.db.Exec(`DELETE FROM boats WHERE owner_id = ? AND id = ?`, ownerID, boatID)
	return err
}
