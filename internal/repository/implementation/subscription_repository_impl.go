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

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	if plan.Id == uuid.Nil {
		plan.Id = uuid.New()
	}
	m := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	var m model.SubscriptionPlan
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PlanToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var models []*model.SubscriptionPlan
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	plans := make([]*entity.SubscriptionPlan, len(models))
	for i, m := range models {
		plans[i] = r.mapper.PlanToEntity(m)
	}
	return plans, nil
}

func (r *SubscriptionRepositoryImpl) CreateOrder(ctx context.Context, order *entity.CheckoutOrder) error {
	if order.Id == uuid.Nil {
		order.Id = uuid.New()
	}
	m := r.mapper.OrderToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.OrderToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateOrder(ctx context.Context, order *entity.CheckoutOrder) error {
	m := r.mapper.OrderToModel(order)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.OrderToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) TransitionOrder(ctx context.Context, order *entity.CheckoutOrder, from string) (bool, error) {
	m := r.mapper.OrderToModel(order)
	result := r.db.WithContext(ctx).
		Model(&model.CheckoutOrder{}).
		Where("id = ? AND status = ?", m.Id, from).
		Updates(map[string]interface{}{
			"status":                 m.Status,
			"gateway_transaction_id": m.GatewayTransactionId,
			"paid_at":                m.PaidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *SubscriptionRepositoryImpl) FindOneOrder(ctx context.Context, specs ...specification.Specification) (*entity.CheckoutOrder, error) {
	var m model.CheckoutOrder
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.OrderToEntity(&m), nil
}
