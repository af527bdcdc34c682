package model

import "time"

// User represents a registered boater.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	BirthDate         string    `json:"birth_date"`
	HasBoatingLicense bool      `json:"has_boating_license"`
	CreatedAt         time.Time `json:"created_at"`
}

// Boat represents a boat registered to a user. Capacity is the declared
// maximum number of people onboard.
type Boat struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id"`
	Name     string `json:"name"`
	HP       int    `json:"hp"`
	Capacity int    `json:"capacity"`
}

// Assessment is the persisted summary of one completed risk test.
// It is constructed exactly once per completed session and never
// mutated afterwards; re-running a test creates a new record.
type Assessment struct {
	ID                 string       `json:"id"`
	BoatID             string       `json:"boat_id"`
	BoatName           string       `json:"boat_name"`
	UserID             string       `json:"user_id"`
	Date               string       `json:"date"`
	Time               string       `json:"time"`
	Score              int          `json:"score"`
	Passengers         int          `json:"passengers"`
	ChecklistResponses map[int]bool `json:"checklist_responses"`
}

// TripStatus represents the status of a boat trip.
type TripStatus string

const (
	TripOngoing TripStatus = "ongoing"
	TripEnded   TripStatus = "ended"
)

// Trip represents a trip started after a passed risk test.
type Trip struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	BoatID       string     `json:"boat_id"`
	BoatName     string     `json:"boat_name"`
	AssessmentID string     `json:"assessment_id"`
	Status       TripStatus `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

// AppConfig holds runtime parameters set via CLI flags.
type AppConfig struct {
	Lang          string // UI language (en, nb)
	BasePath      string // URL prefix for sub-path deployments
	SMSGatewayURL string // SMS gateway base URL (empty disables sending)
	SMSGatewayKey string // API key for the SMS gateway
}
