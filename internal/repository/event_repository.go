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

type EventRepository interface {
	FindAll(ctx context.Context, filter model.EventFilter) ([]*model.Event, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindAttendance(ctx context.Context, eventID, volunteerID uuid.UUID) (*model.Attendance, error)
	ListAttendance(ctx context.Context, eventID uuid.UUID, status string) ([]*model.Attendance, error)
	CountEnrolled(ctx context.Context, eventID uuid.UUID) (int, error)
	CreateAttendance(ctx context.Context, a *model.Attendance) error
	UpdateAttendance(ctx context.Context, a *model.Attendance) error
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) FindAll(ctx context.Context, filter model.EventFilter) ([]*model.Event, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("e.name ILIKE $%d", argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM events e WHERE %s", where), args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	query := fmt.Sprintf(`
		SELECT e.*,
		       (SELECT COUNT(*) FROM attendance a WHERE a.event_id = e.id) AS enrolled_count
		FROM events e
		WHERE %s
		ORDER BY e.starts_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)

	args = append(args, filter.PerPage, offset)

	var events []*model.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var e model.Event
	query := `
		SELECT e.*,
		       (SELECT COUNT(*) FROM attendance a WHERE a.event_id = e.id) AS enrolled_count
		FROM events e
		WHERE e.id = $1
	`
	err := r.db.GetContext(ctx, &e, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *model.Event) error {
	query := `
		INSERT INTO events (id, name, description, location, starts_at, ends_at, capacity, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Description, e.Location, e.StartsAt, e.EndsAt, e.Capacity, e.Status, e.CreatedBy,
	)
	return err
}

func (r *eventRepository) Update(ctx context.Context, e *model.Event) error {
	query := `
		UPDATE events
		SET name = $2, description = $3, location = $4, starts_at = $5, ends_at = $6,
		    capacity = $7, status = $8, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Description, e.Location, e.StartsAt, e.EndsAt, e.Capacity, e.Status,
	)
	return err
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	return err
}

func (r *eventRepository) FindAttendance(ctx context.Context, eventID, volunteerID uuid.UUID) (*model.Attendance, error) {
	var a model.Attendance
	query := "SELECT * FROM attendance WHERE event_id = $1 AND volunteer_id = $2"
	err := r.db.GetContext(ctx, &a, query, eventID, volunteerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *eventRepository) ListAttendance(ctx context.Context, eventID uuid.UUID, status string) ([]*model.Attendance, error) {
	query := `
		SELECT a.*, v.full_name AS volunteer_name, e.name AS event_name
		FROM attendance a
		JOIN volunteers v ON a.volunteer_id = v.id
		JOIN events e ON a.event_id = e.id
		WHERE a.event_id = $1
	`
	args := []interface{}{eventID}
	if status != "" {
		query += " AND a.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY v.full_name ASC"

	var list []*model.Attendance
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *eventRepository) CountEnrolled(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance WHERE event_id = $1", eventID,
	).Scan(&count)
	return count, err
}

func (r *eventRepository) CreateAttendance(ctx context.Context, a *model.Attendance) error {
	query := `
		INSERT INTO attendance (id, event_id, volunteer_id, enrolled_at, status)
		VALUES ($1, $2, $3, NOW(), $4)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.EventID, a.VolunteerID, a.Status)
	return err
}

func (r *eventRepository) UpdateAttendance(ctx context.Context, a *model.Attendance) error {
	query := `
		UPDATE attendance
		SET checked_in_at = $2, checked_out_at = $3, hours = $4, distance_km = $5, status = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.CheckedInAt, a.CheckedOutAt, a.Hours, a.DistanceKM, a.Status,
	)
	return err
}
