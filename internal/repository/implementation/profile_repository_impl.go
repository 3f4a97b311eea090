package implementation

import (
	"context"
	"errors"

	"emoticore-be/internal/entity"
	"emoticore-be/internal/mapper"
	"emoticore-be/internal/model"
	"emoticore-be/internal/repository/contract"
	"emoticore-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *entity.Profile) error {
	m := r.mapper.ProfileToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ProfileToEntity(m)
	return nil
}

func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *entity.Profile) error {
	m := r.mapper.ProfileToModel(profile)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ProfileToEntity(m)
	return nil
}

func (r *ProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error) {
	var m model.Profile
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProfileToEntity(&m), nil
}

type UsageLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewUsageLogRepository(db *gorm.DB) contract.UsageLogRepository {
	return &UsageLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *UsageLogRepositoryImpl) Create(ctx context.Context, log *entity.UsageLog) error {
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	m := r.mapper.UsageLogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.UsageLogToEntity(m)
	return nil
}

func (r *UsageLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageLog, error) {
	var models []*model.UsageLog
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UsageLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.UsageLogToEntity(m)
	}
	return entities, nil
}

func (r *UsageLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.UsageLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
