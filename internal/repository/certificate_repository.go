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

type CertificateRepository interface {
	FindAll(ctx context.Context, filter model.CertificateFilter) ([]*model.Certificate, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Certificate, error)
	FindByQRToken(ctx context.Context, token string) (*model.Certificate, error)
	Create(ctx context.Context, cert *model.Certificate) error
	UpdatePDFURL(ctx context.Context, id uuid.UUID, pdfURL string) error
	Revoke(ctx context.Context, id uuid.UUID) error
}

type certificateRepository struct {
	db *sqlx.DB
}

func NewCertificateRepository(db *sqlx.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

const certificateSelect = `
	SELECT c.*, v.full_name AS volunteer_name, e.name AS event_name,
	       u.name AS issued_by_name
	FROM certificates c
	LEFT JOIN volunteers v ON c.volunteer_id = v.id
	LEFT JOIN events e ON c.event_id = e.id
	LEFT JOIN users u ON c.issued_by = u.id
`

func (r *certificateRepository) FindAll(ctx context.Context, filter model.CertificateFilter) ([]*model.Certificate, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.VolunteerID != "" {
		conditions = append(conditions, fmt.Sprintf("c.volunteer_id = $%d", argIdx))
		args = append(args, filter.VolunteerID)
		argIdx++
	}
	if filter.EventID != "" {
		conditions = append(conditions, fmt.Sprintf("c.event_id = $%d", argIdx))
		args = append(args, filter.EventID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM certificates c WHERE %s", where), args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	query := fmt.Sprintf(`%s WHERE %s ORDER BY c.issued_at DESC LIMIT $%d OFFSET $%d`,
		certificateSelect, where, argIdx, argIdx+1)

	args = append(args, filter.PerPage, offset)

	var certs []*model.Certificate
	if err := r.db.SelectContext(ctx, &certs, query, args...); err != nil {
		return nil, 0, err
	}

	return certs, total, nil
}

func (r *certificateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.GetContext(ctx, &cert, certificateSelect+" WHERE c.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cert, nil
}

func (r *certificateRepository) FindByQRToken(ctx context.Context, token string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.GetContext(ctx, &cert, certificateSelect+" WHERE c.qr_token = $1", token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cert, nil
}

func (r *certificateRepository) Create(ctx context.Context, cert *model.Certificate) error {
	query := `
		INSERT INTO certificates
			(id, certificate_id, volunteer_id, event_id, template_id, hours,
			 issued_at, issued_by, qr_token, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		cert.ID, cert.CertificateID, cert.VolunteerID, cert.EventID, cert.TemplateID,
		cert.Hours, cert.IssuedAt, cert.IssuedBy, cert.QRToken, cert.Status, cert.Notes,
	)
	return err
}

func (r *certificateRepository) UpdatePDFURL(ctx context.Context, id uuid.UUID, pdfURL string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE certificates SET pdf_url = $2 WHERE id = $1", id, pdfURL)
	return err
}

func (r *certificateRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "UPDATE certificates SET status = 'revoked' WHERE id = $1", id)
	return err
}
