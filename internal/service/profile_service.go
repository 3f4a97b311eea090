package service

import (
	"context"

	"emoticore-be/internal/dto"
	"emoticore-be/internal/entity"
	"emoticore-be/internal/repository/specification"
	"emoticore-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProfileService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory) IProfileService {
	return &profileService{
		uowFactory: uowFactory,
	}
}

// GetProfile returns the caller's profile, creating a free one on first access.
func (s *profileService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	if userId == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = newFreeProfile(userId)
		if err := uow.ProfileRepository().Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	return toProfileResponse(profile), nil
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Id:                  p.Id,
		Email:               p.Email,
		FullName:            p.FullName,
		SubscriptionPlan:    p.SubscriptionPlan,
		SubscriptionStatus:  p.SubscriptionStatus,
		SubscriptionEndDate: p.SubscriptionEndDate,
		DailyMessageCount:   p.DailyMessageCount,
		LastMessageDate:     p.LastMessageDate,
	}
}
