package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
)

type VolunteerRepository interface {
	FindAll(ctx context.Context, filter model.VolunteerFilter) ([]*model.Volunteer, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Volunteer, error)
	FindByEmail(ctx context.Context, email string) (*model.Volunteer, error)
	Create(ctx context.Context, v *model.Volunteer) error
	Update(ctx context.Context, v *model.Volunteer) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePhoto(ctx context.Context, id uuid.UUID, photoURL string) error
	Totals(ctx context.Context, id uuid.UUID) (*model.VolunteerTotals, error)
}

type volunteerRepository struct {
	db *sqlx.DB
}

func NewVolunteerRepository(db *sqlx.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) FindAll(ctx context.Context, filter model.VolunteerFilter) ([]*model.Volunteer, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(v.full_name ILIKE $%d OR v.email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("v.city = $%d", argIdx))
		args = append(args, filter.City)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("v.is_active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM volunteers v WHERE %s", where), args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	query := fmt.Sprintf(`
		SELECT v.*
		FROM volunteers v
		WHERE %s
		ORDER BY v.full_name ASC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)

	args = append(args, filter.PerPage, offset)

	var volunteers []*model.Volunteer
	if err := r.db.SelectContext(ctx, &volunteers, query, args...); err != nil {
		return nil, 0, err
	}

	return volunteers, total, nil
}

func (r *volunteerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Volunteer, error) {
	var v model.Volunteer
	err := r.db.GetContext(ctx, &v, "SELECT * FROM volunteers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *volunteerRepository) FindByEmail(ctx context.Context, email string) (*model.Volunteer, error) {
	var v model.Volunteer
	err := r.db.GetContext(ctx, &v, "SELECT * FROM volunteers WHERE email = $1 LIMIT 1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *volunteerRepository) Create(ctx context.Context, v *model.Volunteer) error {
	query := `
		INSERT INTO volunteers (id, full_name, email, phone, city, joined_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.FullName, v.Email, v.Phone, v.City, v.JoinedAt,
	)
	return err
}

func (r *volunteerRepository) Update(ctx context.Context, v *model.Volunteer) error {
	query := `
		UPDATE volunteers
		SET full_name = $2, email = $3, phone = $4, city = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, v.ID, v.FullName, v.Email, v.Phone, v.City)
	return err
}

func (r *volunteerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "UPDATE volunteers SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	return err
}

func (r *volunteerRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photoURL string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE volunteers SET photo_url = $2, updated_at = NOW() WHERE id = $1", id, photoURL)
	return err
}

// Totals aggregates checked-out attendance into badge numbers.
func (r *volunteerRepository) Totals(ctx context.Context, id uuid.UUID) (*model.VolunteerTotals, error) {
	var totals model.VolunteerTotals
	query := `
		SELECT COALESCE(SUM(a.hours), 0)       AS total_hours,
		       COUNT(DISTINCT a.event_id)      AS total_events,
		       COALESCE(SUM(a.distance_km), 0) AS total_distance
		FROM attendance a
		WHERE a.volunteer_id = $1 AND a.status = 'checked_out'
	`
	if err := r.db.GetContext(ctx, &totals, query, id); err != nil {
		return nil, err
	}
	return &totals, nil
}
