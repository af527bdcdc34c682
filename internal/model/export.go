package model

import "time"

// AssessmentExport is the top-level JSON structure for assessment export.
type AssessmentExport struct {
	ExportedAt time.Time         `json:"exported_at"`
	Users      []UserAssessments `json:"users"`
}

// UserAssessments holds one user's assessment history for export.
type UserAssessments struct {
	UserID      string       `json:"user_id"`
	Email       string       `json:"email"`
	DisplayName string       `json:"display_name"`
	Assessments []Assessment `json:"assessments"`
}
