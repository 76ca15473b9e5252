package model

import (
	"time"

	"github.com/google/uuid"
)

type Volunteer struct {
	ID        uuid.UUID  `db:"id"         json:"id"`
	FullName  string     `db:"full_name"  json:"full_name"`
	Email     string     `db:"email"      json:"email"`
	Phone     string     `db:"phone"      json:"phone"`
	City      string     `db:"city"       json:"city"`
	JoinedAt  *time.Time `db:"joined_at"  json:"joined_at"`
	PhotoURL  *string    `db:"photo_url"  json:"photo_url"`
	IsActive  bool       `db:"is_active"  json:"is_active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// VolunteerTotals aggregates attendance into the numbers printed on badges
// and milestone certificates.
type VolunteerTotals struct {
	TotalHours    float64 `db:"total_hours"    json:"total_hours"`
	TotalEvents   int     `db:"total_events"   json:"total_events"`
	TotalDistance float64 `db:"total_distance" json:"total_distance"` // kilometers, display only
}

type VolunteerDetail struct {
	Volunteer
	Totals VolunteerTotals `json:"totals"`
}

type CreateVolunteerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	JoinedAt string `json:"joined_at"` // format: YYYY-MM-DD, optional
}

type UpdateVolunteerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

type VolunteerFilter struct {
	Search  string
	City    string
	Active  *bool
	Page    int
	PerPage int
}
