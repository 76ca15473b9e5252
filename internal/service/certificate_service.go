package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/render"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/repository"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/response"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrCertificateRevoked  = errors.New("certificate has been revoked")
)

const issueDateLayout = "January 2, 2006"

type CertificateService interface {
	GetAll(ctx context.Context, filter model.CertificateFilter) ([]*model.Certificate, *response.Pagination, error)
	GetByID(ctx context.Context, id string) (*model.Certificate, error)
	Issue(ctx context.Context, req model.CreateCertificateRequest, issuedBy string) (*model.Certificate, error)
	IssueBatch(ctx context.Context, req model.BatchCertificateRequest, issuedBy string) ([]model.BatchCertificateItem, error)
	Revoke(ctx context.Context, id string) error
	Verify(ctx context.Context, token string) (*model.VerifyResponse, error)
	DownloadPDF(ctx context.Context, id string) ([]byte, string, error)
	Templates() []render.CertificateTemplate
}

type certificateService struct {
	repo          repository.CertificateRepository
	volunteerRepo repository.VolunteerRepository
	eventRepo     repository.EventRepository
	renderer      *render.CertificateRenderer
	storage       *utils.StorageService
}

func NewCertificateService(
	repo repository.CertificateRepository,
	volunteerRepo repository.VolunteerRepository,
	eventRepo repository.EventRepository,
	renderer *render.CertificateRenderer,
	storage *utils.StorageService,
) CertificateService {
	return &certificateService{
		repo: repo, volunteerRepo: volunteerRepo, eventRepo: eventRepo,
		renderer: renderer, storage: storage,
	}
}

func (s *certificateService) Templates() []render.CertificateTemplate {
	return render.Templates()
}

func (s *certificateService) GetAll(ctx context.Context, filter model.CertificateFilter) ([]*model.Certificate, *response.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	certs, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int(total) / filter.PerPage
	if int(total)%filter.PerPage > 0 {
		totalPages++
	}

	return certs, &response.Pagination{
		Page: filter.Page, PerPage: filter.PerPage,
		TotalItems: total, TotalPages: totalPages,
	}, nil
}

func (s *certificateService) GetByID(ctx context.Context, id string) (*model.Certificate, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid ID")
	}

	cert, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, ErrCertificateNotFound
	}
	return cert, nil
}

func (s *certificateService) Issue(ctx context.Context, req model.CreateCertificateRequest, issuedBy string) (*model.Certificate, error) {
	volunteerUID, err := uuid.Parse(req.VolunteerID)
	if err != nil {
		return nil, errors.New("invalid volunteer_id")
	}
	volunteer, err := s.volunteerRepo.FindByID(ctx, volunteerUID)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, ErrVolunteerNotFound
	}

	cert := &model.Certificate{
		ID:            uuid.New(),
		CertificateID: utils.NewArtifactID("CERT"),
		VolunteerID:   volunteerUID,
		TemplateID:    render.TemplateByID(req.TemplateID).ID,
		IssuedAt:      time.Now(),
		Status:        "active",
		Notes:         req.Notes,
	}

	if req.EventID != "" {
		eventUID, err := uuid.Parse(req.EventID)
		if err != nil {
			return nil, errors.New("invalid event_id")
		}
		event, err := s.eventRepo.FindByID(ctx, eventUID)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, ErrEventNotFound
		}
		cert.EventID = &event.ID

		if attendance, err := s.eventRepo.FindAttendance(ctx, event.ID, volunteerUID); err == nil && attendance != nil {
			cert.Hours = attendance.Hours
		}
	}

	qrToken, err := utils.GenerateQRToken()
	if err != nil {
		return nil, err
	}
	cert.QRToken = qrToken

	if issuedByUID, err := uuid.Parse(issuedBy); err == nil {
		cert.IssuedBy = &issuedByUID
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, err
	}

	detail, err := s.repo.FindByID(ctx, cert.ID)
	if err != nil {
		return nil, err
	}

	// Render and archive the PDF in the background
	go s.generateAndUploadPDF(context.Background(), detail)

	return detail, nil
}

// IssueBatch renders certificates for every checked-out volunteer of an
// event. Each record gets its own result entry; failures never abort the
// rest of the batch.
func (s *certificateService) IssueBatch(ctx context.Context, req model.BatchCertificateRequest, issuedBy string) ([]model.BatchCertificateItem, error) {
	eventUID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.New("invalid event_id")
	}
	event, err := s.eventRepo.FindByID(ctx, eventUID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	attendance, err := s.eventRepo.ListAttendance(ctx, event.ID, model.AttendanceCheckedOut)
	if err != nil {
		return nil, err
	}

	tpl := render.TemplateByID(req.TemplateID)
	records := make([]render.CertificateData, len(attendance))
	for i, a := range attendance {
		name := ""
		if a.VolunteerName != nil {
			name = *a.VolunteerName
		}
		records[i] = render.CertificateData{
			VolunteerName:    name,
			EventName:        event.Name,
			EventDate:        event.StartsAt.Format(issueDateLayout),
			Location:         event.Location,
			HoursContributed: a.Hours,
		}
	}

	var issuedByUID *uuid.UUID
	if uid, err := uuid.Parse(issuedBy); err == nil {
		issuedByUID = &uid
	}

	items := make([]model.BatchCertificateItem, len(attendance))
	for i, result := range s.renderer.GenerateBatch(records, tpl) {
		a := attendance[i]
		items[i] = model.BatchCertificateItem{VolunteerID: a.VolunteerID}
		if a.VolunteerName != nil {
			items[i].VolunteerName = *a.VolunteerName
		}

		if result.Err != nil {
			items[i].Error = result.Err.Error()
			continue
		}

		cert, err := s.persistBatchItem(ctx, a, event, tpl.ID, result, issuedByUID)
		if err != nil {
			items[i].Error = err.Error()
			continue
		}
		items[i].Certificate = cert
	}

	return items, nil
}

func (s *certificateService) persistBatchItem(
	ctx context.Context,
	a *model.Attendance,
	event *model.Event,
	templateID string,
	result render.BatchItem,
	issuedBy *uuid.UUID,
) (*model.Certificate, error) {
	qrToken, err := utils.GenerateQRToken()
	if err != nil {
		return nil, err
	}

	cert := &model.Certificate{
		ID:            uuid.New(),
		CertificateID: result.CertificateID,
		VolunteerID:   a.VolunteerID,
		EventID:       &event.ID,
		TemplateID:    templateID,
		Hours:         a.Hours,
		IssuedAt:      time.Now(),
		IssuedBy:      issuedBy,
		QRToken:       qrToken,
		Status:        "active",
	}
	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, err
	}

	if s.storage != nil {
		if pdfURL, err := s.storage.UploadArtifact(ctx, "certificates", result.PDF, cert.CertificateID, "application/pdf"); err == nil {
			s.repo.UpdatePDFURL(ctx, cert.ID, pdfURL)
			cert.PDFURL = &pdfURL
		}
	}
	return cert, nil
}

func (s *certificateService) generateAndUploadPDF(ctx context.Context, cert *model.Certificate) {
	pdfBytes, _, err := s.buildPDF(ctx, cert)
	if err != nil {
		return
	}

	if s.storage == nil {
		return
	}
	pdfURL, err := s.storage.UploadArtifact(ctx, "certificates", pdfBytes, cert.CertificateID, "application/pdf")
	if err != nil {
		return
	}

	s.repo.UpdatePDFURL(ctx, cert.ID, pdfURL)
}

func (s *certificateService) DownloadPDF(ctx context.Context, id string) ([]byte, string, error) {
	cert, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.buildPDF(ctx, cert)
}

// buildPDF assembles the render data for a stored certificate and produces
// the PDF plus its download filename.
func (s *certificateService) buildPDF(ctx context.Context, cert *model.Certificate) ([]byte, string, error) {
	volunteer, err := s.volunteerRepo.FindByID(ctx, cert.VolunteerID)
	if err != nil {
		return nil, "", err
	}
	if volunteer == nil {
		return nil, "", ErrVolunteerNotFound
	}

	totals, err := s.volunteerRepo.Totals(ctx, cert.VolunteerID)
	if err != nil {
		return nil, "", err
	}

	data := render.CertificateData{
		VolunteerName:    volunteer.FullName,
		HoursContributed: cert.Hours,
		CertificateID:    cert.CertificateID,
		IssueDate:        cert.IssuedAt.Format(issueDateLayout),
		TotalHours:       int(totals.TotalHours),
		BadgeType:        badgeNameForHours(totals.TotalHours),
	}

	if cert.EventID != nil {
		event, err := s.eventRepo.FindByID(ctx, *cert.EventID)
		if err != nil {
			return nil, "", err
		}
		if event != nil {
			data.EventName = event.Name
			data.EventDate = event.StartsAt.Format(issueDateLayout)
			data.Location = event.Location
		}
	}
	if cert.IssuedByName != nil {
		data.OrganizerName = *cert.IssuedByName
	}

	pdfBytes, err := s.renderer.Generate(data, render.TemplateByID(cert.TemplateID))
	if err != nil {
		return nil, "", fmt.Errorf("failed to render certificate: %w", err)
	}

	return pdfBytes, utils.CertificateFilename(volunteer.FullName), nil
}

func (s *certificateService) Revoke(ctx context.Context, id string) error {
	cert, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cert.Status == "revoked" {
		return ErrCertificateRevoked
	}

	return s.repo.Revoke(ctx, cert.ID)
}

func (s *certificateService) Verify(ctx context.Context, token string) (*model.VerifyResponse, error) {
	cert, err := s.repo.FindByQRToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if cert == nil {
		return &model.VerifyResponse{
			IsValid: false,
			Message: "Certificate not found. This document may not be authentic.",
		}, nil
	}

	if cert.Status == "revoked" {
		return &model.VerifyResponse{
			IsValid:     false,
			Certificate: cert,
			Message:     "This certificate has been revoked and is no longer valid.",
		}, nil
	}

	volunteer, err := s.volunteerRepo.FindByID(ctx, cert.VolunteerID)
	if err != nil {
		return nil, err
	}

	return &model.VerifyResponse{
		IsValid:     true,
		Certificate: cert,
		Volunteer:   volunteer,
		Message:     "Certificate is valid and was issued by Plogging Ethiopia.",
	}, nil
}
