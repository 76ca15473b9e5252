package model

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID            uuid.UUID  `db:"id"             json:"id"`
	CertificateID string     `db:"certificate_id" json:"certificate_id"` // printable id, e.g. CERT-XXXX-XXXX
	VolunteerID   uuid.UUID  `db:"volunteer_id"   json:"volunteer_id"`
	EventID       *uuid.UUID `db:"event_id"       json:"event_id"`
	TemplateID    string     `db:"template_id"    json:"template_id"`
	Hours         float64    `db:"hours"          json:"hours"`
	IssuedAt      time.Time  `db:"issued_at"      json:"issued_at"`
	IssuedBy      *uuid.UUID `db:"issued_by"      json:"issued_by"`
	QRToken       string     `db:"qr_token"       json:"qr_token"`
	PDFURL        *string    `db:"pdf_url"        json:"pdf_url"`
	Status        string     `db:"status"         json:"status"` // active | revoked
	Notes         string     `db:"notes"          json:"notes"`
	CreatedAt     time.Time  `db:"created_at"     json:"created_at"`

	// Join fields
	VolunteerName *string `db:"volunteer_name" json:"volunteer_name,omitempty"`
	EventName     *string `db:"event_name"     json:"event_name,omitempty"`
	IssuedByName  *string `db:"issued_by_name" json:"issued_by_name,omitempty"`
}

type CreateCertificateRequest struct {
	VolunteerID string `json:"volunteer_id"`
	EventID     string `json:"event_id"`    // optional for milestone/leadership certificates
	TemplateID  string `json:"template_id"` // unknown ids fall back to the default template
	Notes       string `json:"notes"`
}

type BatchCertificateRequest struct {
	EventID    string `json:"event_id"`
	TemplateID string `json:"template_id"`
}

// BatchCertificateItem reports the outcome for one volunteer of a batch run.
// A failed item never aborts the remainder of the batch.
type BatchCertificateItem struct {
	VolunteerID   uuid.UUID    `json:"volunteer_id"`
	VolunteerName string       `json:"volunteer_name"`
	Certificate   *Certificate `json:"certificate,omitempty"`
	Error         string       `json:"error,omitempty"`
}

type CertificateFilter struct {
	VolunteerID string
	EventID     string
	Status      string
	Page        int
	PerPage     int
}

// VerifyResponse for the public QR verification endpoint
type VerifyResponse struct {
	IsValid     bool         `json:"is_valid"`
	Certificate *Certificate `json:"certificate,omitempty"`
	Volunteer   *Volunteer   `json:"volunteer,omitempty"`
	Message     string       `json:"message"`
}

// Badge is the persisted record behind a generated badge image; BadgeID is
// the stable identifier embedded in the badge QR target URL.
type Badge struct {
	ID            uuid.UUID `db:"id"             json:"id"`
	BadgeID       string    `db:"badge_id"       json:"badge_id"` // e.g. BDG-XXXX-XXXX
	VolunteerID   uuid.UUID `db:"volunteer_id"   json:"volunteer_id"`
	BadgeName     string    `db:"badge_name"     json:"badge_name"`
	TotalHours    float64   `db:"total_hours"    json:"total_hours"`
	TotalEvents   int       `db:"total_events"   json:"total_events"`
	TotalDistance float64   `db:"total_distance" json:"total_distance"`
	IssuedAt      time.Time `db:"issued_at"      json:"issued_at"`

	// Join fields
	VolunteerName *string `db:"volunteer_name" json:"volunteer_name,omitempty"`
	PhotoURL      *string `db:"photo_url"      json:"photo_url,omitempty"`
}

type IssueBadgeRequest struct {
	VolunteerID string `json:"volunteer_id"`
	BadgeName   string `json:"badge_name"` // optional, defaults from hour tiers
}

// BadgeVerifyResponse is the payload behind {frontend}/badge/{badgeId}.
type BadgeVerifyResponse struct {
	IsValid   bool       `json:"is_valid"`
	Badge     *Badge     `json:"badge,omitempty"`
	Volunteer *Volunteer `json:"volunteer,omitempty"`
	Message   string     `json:"message"`
}
