package mapper

import (
	"emoticore-be/internal/entity"
	"emoticore-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:          p.Id,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Interval:    p.Interval,
		IsActive:    p.IsActive,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:          p.Id,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Interval:    p.Interval,
		IsActive:    p.IsActive,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *SubscriptionMapper) OrderToEntity(o *model.CheckoutOrder) *entity.CheckoutOrder {
	if o == nil {
		return nil
	}
	return &entity.CheckoutOrder{
		Id:                   o.Id,
		UserId:               o.UserId,
		PlanId:               o.PlanId,
		GrossAmount:          o.GrossAmount,
		Status:               o.Status,
		SnapToken:            o.SnapToken,
		RedirectURL:          o.RedirectURL,
		GatewayTransactionId: o.GatewayTransactionId,
		PaidAt:               o.PaidAt,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

func (m *SubscriptionMapper) OrderToModel(o *entity.CheckoutOrder) *model.CheckoutOrder {
	if o == nil {
		return nil
	}
	return &model.CheckoutOrder{
		Id:                   o.Id,
		UserId:               o.UserId,
		PlanId:               o.PlanId,
		GrossAmount:          o.GrossAmount,
		Status:               o.Status,
		SnapToken:            o.SnapToken,
		RedirectURL:          o.RedirectURL,
		GatewayTransactionId: o.GatewayTransactionId,
		PaidAt:               o.PaidAt,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}
