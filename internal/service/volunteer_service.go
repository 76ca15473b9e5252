package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/repository"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/response"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

var (
	ErrVolunteerNotFound = errors.New("volunteer not found")
	ErrEmailTaken        = errors.New("a volunteer with this email already exists")
)

type VolunteerService interface {
	GetAll(ctx context.Context, filter model.VolunteerFilter) ([]*model.Volunteer, *response.Pagination, error)
	GetByID(ctx context.Context, id string) (*model.VolunteerDetail, error)
	Create(ctx context.Context, req model.CreateVolunteerRequest) (*model.Volunteer, error)
	Update(ctx context.Context, id string, req model.UpdateVolunteerRequest) (*model.Volunteer, error)
	Delete(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, id string, data []byte, contentType string) (*model.Volunteer, error)
}

type volunteerService struct {
	repo    repository.VolunteerRepository
	storage *utils.StorageService
}

func NewVolunteerService(repo repository.VolunteerRepository, storage *utils.StorageService) VolunteerService {
	return &volunteerService{repo: repo, storage: storage}
}

func (s *volunteerService) GetAll(ctx context.Context, filter model.VolunteerFilter) ([]*model.Volunteer, *response.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	volunteers, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int(total) / filter.PerPage
	if int(total)%filter.PerPage > 0 {
		totalPages++
	}

	pagination := &response.Pagination{
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return volunteers, pagination, nil
}

func (s *volunteerService) GetByID(ctx context.Context, id string) (*model.VolunteerDetail, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid ID")
	}

	volunteer, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, ErrVolunteerNotFound
	}

	totals, err := s.repo.Totals(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &model.VolunteerDetail{
		Volunteer: *volunteer,
		Totals:    *totals,
	}, nil
}

func (s *volunteerService) Create(ctx context.Context, req model.CreateVolunteerRequest) (*model.Volunteer, error) {
	if req.Email != "" {
		existing, err := s.repo.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
	}

	volunteer := &model.Volunteer{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		City:     req.City,
		IsActive: true,
	}

	if req.JoinedAt != "" {
		t, err := time.Parse("2006-01-02", req.JoinedAt)
		if err != nil {
			return nil, errors.New("invalid joined_at format, use YYYY-MM-DD")
		}
		volunteer.JoinedAt = &t
	}

	if err := s.repo.Create(ctx, volunteer); err != nil {
		return nil, err
	}

	return volunteer, nil
}

func (s *volunteerService) Update(ctx context.Context, id string, req model.UpdateVolunteerRequest) (*model.Volunteer, error) {
	detail, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	volunteer := &detail.Volunteer

	volunteer.FullName = req.FullName
	volunteer.Email = req.Email
	volunteer.Phone = req.Phone
	volunteer.City = req.City

	if err := s.repo.Update(ctx, volunteer); err != nil {
		return nil, err
	}

	return volunteer, nil
}

func (s *volunteerService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	uid, _ := uuid.Parse(id)
	return s.repo.Delete(ctx, uid)
}

func (s *volunteerService) UploadPhoto(ctx context.Context, id string, data []byte, contentType string) (*model.Volunteer, error) {
	detail, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	volunteer := &detail.Volunteer

	// Drop the previous photo if present
	if volunteer.PhotoURL != nil {
		s.storage.DeleteFile(ctx, *volunteer.PhotoURL)
	}

	result, err := s.storage.UploadPhoto(ctx, "volunteers/photos", data, contentType)
	if err != nil {
		return nil, err
	}

	uid, _ := uuid.Parse(id)
	if err := s.repo.UpdatePhoto(ctx, uid, result.FileURL); err != nil {
		return nil, err
	}

	volunteer.PhotoURL = &result.FileURL
	return volunteer, nil
}
