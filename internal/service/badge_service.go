package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/render"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/repository"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

var ErrBadgeNotFound = errors.New("badge not found")

type BadgeService interface {
	Issue(ctx context.Context, req model.IssueBadgeRequest) (*model.Badge, error)
	GetByBadgeID(ctx context.Context, badgeID string) (*model.Badge, error)
	LatestForVolunteer(ctx context.Context, volunteerID string) (*model.Badge, error)
	PNG(ctx context.Context, badgeID string) ([]byte, string, error)
	DataURL(ctx context.Context, badgeID string) (string, error)
	Verify(ctx context.Context, badgeID string) (*model.BadgeVerifyResponse, error)
}

type badgeService struct {
	repo          repository.BadgeRepository
	volunteerRepo repository.VolunteerRepository
	renderer      *render.BadgeRenderer
}

func NewBadgeService(
	repo repository.BadgeRepository,
	volunteerRepo repository.VolunteerRepository,
	renderer *render.BadgeRenderer,
) BadgeService {
	return &badgeService{repo: repo, volunteerRepo: volunteerRepo, renderer: renderer}
}

// badgeNameForHours maps accumulated volunteer hours to the tier name
// printed on badges and milestone certificates.
func badgeNameForHours(hours float64) string {
	switch {
	case hours >= 200:
		return "Green Legend"
	case hours >= 100:
		return "Green Warrior"
	case hours >= 50:
		return "Eco Champion"
	case hours >= 20:
		return "Street Guardian"
	default:
		return "Fresh Starter"
	}
}

func (s *badgeService) Issue(ctx context.Context, req model.IssueBadgeRequest) (*model.Badge, error) {
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

	totals, err := s.volunteerRepo.Totals(ctx, volunteerUID)
	if err != nil {
		return nil, err
	}

	badgeName := req.BadgeName
	if badgeName == "" {
		badgeName = badgeNameForHours(totals.TotalHours)
	}

	badge := &model.Badge{
		ID:            uuid.New(),
		BadgeID:       utils.NewArtifactID("BDG"),
		VolunteerID:   volunteerUID,
		BadgeName:     badgeName,
		TotalHours:    totals.TotalHours,
		TotalEvents:   totals.TotalEvents,
		TotalDistance: totals.TotalDistance,
		IssuedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, badge); err != nil {
		return nil, err
	}

	badge.VolunteerName = &volunteer.FullName
	badge.PhotoURL = volunteer.PhotoURL
	return badge, nil
}

func (s *badgeService) GetByBadgeID(ctx context.Context, badgeID string) (*model.Badge, error) {
	badge, err := s.repo.FindByBadgeID(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return nil, ErrBadgeNotFound
	}
	return badge, nil
}

func (s *badgeService) LatestForVolunteer(ctx context.Context, volunteerID string) (*model.Badge, error) {
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

	badge, err := s.repo.FindLatestByVolunteer(ctx, volunteerUID)
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return nil, ErrBadgeNotFound
	}
	return badge, nil
}

func (s *badgeService) PNG(ctx context.Context, badgeID string) ([]byte, string, error) {
	badge, err := s.GetByBadgeID(ctx, badgeID)
	if err != nil {
		return nil, "", err
	}

	png, err := s.renderer.PNG(ctx, s.buildData(badge))
	if err != nil {
		return nil, "", err
	}

	name := badge.BadgeID
	if badge.VolunteerName != nil {
		name = *badge.VolunteerName
	}
	return png, utils.BadgeFilename(name), nil
}

func (s *badgeService) DataURL(ctx context.Context, badgeID string) (string, error) {
	badge, err := s.GetByBadgeID(ctx, badgeID)
	if err != nil {
		return "", err
	}
	return s.renderer.DataURL(ctx, s.buildData(badge))
}

func (s *badgeService) Verify(ctx context.Context, badgeID string) (*model.BadgeVerifyResponse, error) {
	badge, err := s.repo.FindByBadgeID(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return &model.BadgeVerifyResponse{
			IsValid: false,
			Message: "Badge not found. This badge may not be authentic.",
		}, nil
	}

	volunteer, err := s.volunteerRepo.FindByID(ctx, badge.VolunteerID)
	if err != nil {
		return nil, err
	}

	return &model.BadgeVerifyResponse{
		IsValid:   true,
		Badge:     badge,
		Volunteer: volunteer,
		Message:   "Badge is valid and was issued by Plogging Ethiopia.",
	}, nil
}

func (s *badgeService) buildData(badge *model.Badge) render.BadgeData {
	data := render.BadgeData{
		BadgeID:    badge.BadgeID,
		BadgeName:  badge.BadgeName,
		TotalHours: badge.TotalHours,
	}
	if badge.VolunteerName != nil {
		data.VolunteerName = *badge.VolunteerName
	}
	if badge.PhotoURL != nil {
		data.ProfileImageURL = *badge.PhotoURL
	}
	return data
}
