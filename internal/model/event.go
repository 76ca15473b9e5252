package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID  `db:"id"           json:"id"`
	Name        string     `db:"name"         json:"name"`
	Description string     `db:"description"  json:"description"`
	Location    string     `db:"location"     json:"location"`
	StartsAt    time.Time  `db:"starts_at"    json:"starts_at"`
	EndsAt      *time.Time `db:"ends_at"      json:"ends_at"`
	Capacity    int        `db:"capacity"     json:"capacity"` // 0 = unlimited
	Status      string     `db:"status"       json:"status"`   // upcoming | ongoing | completed | cancelled
	CreatedBy   *uuid.UUID `db:"created_by"   json:"created_by"`
	CreatedAt   time.Time  `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"   json:"updated_at"`

	// Join fields
	EnrolledCount *int `db:"enrolled_count" json:"enrolled_count,omitempty"`
}

type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartsAt    string `json:"starts_at"` // RFC3339
	EndsAt      string `json:"ends_at"`   // RFC3339, optional
	Capacity    int    `json:"capacity"`
}

type UpdateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
}

type EventFilter struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// Attendance tracks one volunteer's participation in one event. Hours accrue
// only after check-out.
type Attendance struct {
	ID           uuid.UUID  `db:"id"             json:"id"`
	EventID      uuid.UUID  `db:"event_id"       json:"event_id"`
	VolunteerID  uuid.UUID  `db:"volunteer_id"   json:"volunteer_id"`
	EnrolledAt   time.Time  `db:"enrolled_at"    json:"enrolled_at"`
	CheckedInAt  *time.Time `db:"checked_in_at"  json:"checked_in_at"`
	CheckedOutAt *time.Time `db:"checked_out_at" json:"checked_out_at"`
	Hours        float64    `db:"hours"          json:"hours"`
	DistanceKM   float64    `db:"distance_km"    json:"distance_km"`
	Status       string     `db:"status"         json:"status"` // enrolled | checked_in | checked_out

	// Join fields
	VolunteerName *string `db:"volunteer_name" json:"volunteer_name,omitempty"`
	EventName     *string `db:"event_name"     json:"event_name,omitempty"`
}

const (
	AttendanceEnrolled   = "enrolled"
	AttendanceCheckedIn  = "checked_in"
	AttendanceCheckedOut = "checked_out"
)

type EnrollRequest struct {
	VolunteerID string `json:"volunteer_id"`
}

type CheckOutRequest struct {
	DistanceKM float64 `json:"distance_km"` // optional, plogging distance covered
}
