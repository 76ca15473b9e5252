package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/repository"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/response"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventFull          = errors.New("event has reached its capacity")
	ErrAlreadyEnrolled    = errors.New("volunteer is already enrolled in this event")
	ErrNotEnrolled        = errors.New("volunteer is not enrolled in this event")
	ErrNotCheckedIn       = errors.New("volunteer has not checked in")
	ErrAlreadyCheckedIn   = errors.New("volunteer has already checked in")
	ErrAlreadyCheckedOut  = errors.New("volunteer has already checked out")
	ErrEventNotEnrollable = errors.New("event is not open for enrollment")
)

type EventService interface {
	GetAll(ctx context.Context, filter model.EventFilter) ([]*model.Event, *response.Pagination, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Create(ctx context.Context, req model.CreateEventRequest, createdBy string) (*model.Event, error)
	Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) error

	Enroll(ctx context.Context, eventID, volunteerID string) (*model.Attendance, error)
	CheckIn(ctx context.Context, eventID, volunteerID string) (*model.Attendance, error)
	CheckOut(ctx context.Context, eventID, volunteerID string, distanceKM float64) (*model.Attendance, error)
	Attendance(ctx context.Context, eventID, status string) ([]*model.Attendance, error)
}

type eventService struct {
	repo          repository.EventRepository
	volunteerRepo repository.VolunteerRepository
}

func NewEventService(repo repository.EventRepository, volunteerRepo repository.VolunteerRepository) EventService {
	return &eventService{repo: repo, volunteerRepo: volunteerRepo}
}

func (s *eventService) GetAll(ctx context.Context, filter model.EventFilter) ([]*model.Event, *response.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	events, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int(total) / filter.PerPage
	if int(total)%filter.PerPage > 0 {
		totalPages++
	}

	return events, &response.Pagination{
		Page: filter.Page, PerPage: filter.PerPage,
		TotalItems: total, TotalPages: totalPages,
	}, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid ID")
	}

	event, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *eventService) Create(ctx context.Context, req model.CreateEventRequest, createdBy string) (*model.Event, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, errors.New("invalid starts_at format, use RFC3339")
	}

	event := &model.Event{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    startsAt,
		Capacity:    req.Capacity,
		Status:      "upcoming",
	}

	if req.EndsAt != "" {
		t, err := time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			return nil, errors.New("invalid ends_at format, use RFC3339")
		}
		event.EndsAt = &t
	}

	if createdByUID, err := uuid.Parse(createdBy); err == nil {
		event.CreatedBy = &createdByUID
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Name = req.Name
	event.Description = req.Description
	event.Location = req.Location
	event.Capacity = req.Capacity
	if req.Status != "" {
		event.Status = req.Status
	}

	if req.StartsAt != "" {
		t, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			return nil, errors.New("invalid starts_at format, use RFC3339")
		}
		event.StartsAt = t
	}
	if req.EndsAt != "" {
		t, err := time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			return nil, errors.New("invalid ends_at format, use RFC3339")
		}
		event.EndsAt = &t
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, event.ID)
}

func (s *eventService) Enroll(ctx context.Context, eventID, volunteerID string) (*model.Attendance, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == "completed" || event.Status == "cancelled" {
		return nil, ErrEventNotEnrollable
	}

	volunteerUID, err := uuid.Parse(volunteerID)
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

	existing, err := s.repo.FindAttendance(ctx, event.ID, volunteerUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyEnrolled
	}

	if event.Capacity > 0 {
		enrolled, err := s.repo.CountEnrolled(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		if enrolled >= event.Capacity {
			return nil, ErrEventFull
		}
	}

	attendance := &model.Attendance{
		ID:          uuid.New(),
		EventID:     event.ID,
		VolunteerID: volunteerUID,
		EnrolledAt:  time.Now(),
		Status:      model.AttendanceEnrolled,
	}
	if err := s.repo.CreateAttendance(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

func (s *eventService) CheckIn(ctx context.Context, eventID, volunteerID string) (*model.Attendance, error) {
	attendance, err := s.findAttendance(ctx, eventID, volunteerID)
	if err != nil {
		return nil, err
	}

	switch attendance.Status {
	case model.AttendanceCheckedIn:
		return nil, ErrAlreadyCheckedIn
	case model.AttendanceCheckedOut:
		return nil, ErrAlreadyCheckedOut
	}

	now := time.Now()
	attendance.CheckedInAt = &now
	attendance.Status = model.AttendanceCheckedIn

	if err := s.repo.UpdateAttendance(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

func (s *eventService) CheckOut(ctx context.Context, eventID, volunteerID string, distanceKM float64) (*model.Attendance, error) {
	attendance, err := s.findAttendance(ctx, eventID, volunteerID)
	if err != nil {
		return nil, err
	}

	switch attendance.Status {
	case model.AttendanceEnrolled:
		return nil, ErrNotCheckedIn
	case model.AttendanceCheckedOut:
		return nil, ErrAlreadyCheckedOut
	}
	if attendance.CheckedInAt == nil {
		return nil, ErrNotCheckedIn
	}

	now := time.Now()
	attendance.CheckedOutAt = &now
	attendance.Status = model.AttendanceCheckedOut
	attendance.DistanceKM = distanceKM

	// Hours accrue from the actual check-in/check-out window, rounded to a
	// quarter hour so certificates print clean numbers.
	elapsed := now.Sub(*attendance.CheckedInAt)
	attendance.Hours = float64(int(elapsed.Minutes()/15+0.5)) / 4
	if attendance.Hours < 0.25 {
		attendance.Hours = 0.25
	}

	if err := s.repo.UpdateAttendance(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

func (s *eventService) Attendance(ctx context.Context, eventID, status string) ([]*model.Attendance, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAttendance(ctx, event.ID, status)
}

func (s *eventService) findAttendance(ctx context.Context, eventID, volunteerID string) (*model.Attendance, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	volunteerUID, err := uuid.Parse(volunteerID)
	if err != nil {
		return nil, errors.New("invalid volunteer_id")
	}

	attendance, err := s.repo.FindAttendance(ctx, event.ID, volunteerUID)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, ErrNotEnrolled
	}
	return attendance, nil
}
