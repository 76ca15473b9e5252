package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
)

type BadgeRepository interface {
	FindByBadgeID(ctx context.Context, badgeID string) (*model.Badge, error)
	FindLatestByVolunteer(ctx context.Context, volunteerID uuid.UUID) (*model.Badge, error)
	Create(ctx context.Context, b *model.Badge) error
}

type badgeRepository struct {
	db *sqlx.DB
}

func NewBadgeRepository(db *sqlx.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

const badgeSelect = `
	SELECT b.*, v.full_name AS volunteer_name, v.photo_url
	FROM badges b
	JOIN volunteers v ON b.volunteer_id = v.id
`

func (r *badgeRepository) FindByBadgeID(ctx context.Context, badgeID string) (*model.Badge, error) {
	var b model.Badge
	err := r.db.GetContext(ctx, &b, badgeSelect+" WHERE b.badge_id = $1", badgeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *badgeRepository) FindLatestByVolunteer(ctx context.Context, volunteerID uuid.UUID) (*model.Badge, error) {
	var b model.Badge
	query := badgeSelect + " WHERE b.volunteer_id = $1 ORDER BY b.issued_at DESC LIMIT 1"
	err := r.db.GetContext(ctx, &b, query, volunteerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *badgeRepository) Create(ctx context.Context, b *model.Badge) error {
	query := `
		INSERT INTO badges
			(id, badge_id, volunteer_id, badge_name, total_hours, total_events, total_distance, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.BadgeID, b.VolunteerID, b.BadgeName, b.TotalHours, b.TotalEvents, b.TotalDistance, b.IssuedAt,
	)
	return err
}
