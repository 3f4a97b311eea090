package contract

import (
	"context"

	"emoticore-be/internal/entity"
	"emoticore-be/internal/repository/specification"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	Update(ctx context.Context, profile *entity.Profile) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error)
}

type UsageLogRepository interface {
	Create(ctx context.Context, log *entity.UsageLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
