package mapper

import (
	"encoding/json"

	"emoticore-be/internal/entity"
	"emoticore-be/internal/model"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ProfileToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	return &entity.Profile{
		Id:                     p.Id,
		Email:                  p.Email,
		FullName:               p.FullName,
		SubscriptionPlan:       p.SubscriptionPlan,
		SubscriptionStatus:     p.SubscriptionStatus,
		BillingCustomerRef:     p.BillingCustomerRef,
		BillingSubscriptionRef: p.BillingSubscriptionRef,
		SubscriptionEndDate:    p.SubscriptionEndDate,
		DailyMessageCount:      p.DailyMessageCount,
		LastMessageDate:        p.LastMessageDate,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func (m *ProfileMapper) ProfileToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	return &model.Profile{
		Id:                     p.Id,
		Email:                  p.Email,
		FullName:               p.FullName,
		SubscriptionPlan:       p.SubscriptionPlan,
		SubscriptionStatus:     p.SubscriptionStatus,
		BillingCustomerRef:     p.BillingCustomerRef,
		BillingSubscriptionRef: p.BillingSubscriptionRef,
		SubscriptionEndDate:    p.SubscriptionEndDate,
		DailyMessageCount:      p.DailyMessageCount,
		LastMessageDate:        p.LastMessageDate,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func (m *ProfileMapper) UsageLogToEntity(u *model.UsageLog) *entity.UsageLog {
	if u == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(u.Metadata) > 0 {
		_ = json.Unmarshal(u.Metadata, &metadata)
	}
	return &entity.UsageLog{
		Id:        u.Id,
		UserId:    u.UserId,
		Action:    u.Action,
		Metadata:  metadata,
		CreatedAt: u.CreatedAt,
	}
}

func (m *ProfileMapper) UsageLogToModel(u *entity.UsageLog) *model.UsageLog {
	if u == nil {
		return nil
	}
	var metadata datatypes.JSON
	if u.Metadata != nil {
		if raw, err := json.Marshal(u.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}
	return &model.UsageLog{
		Id:        u.Id,
		UserId:    u.UserId,
		Action:    u.Action,
		Metadata:  metadata,
		CreatedAt: u.CreatedAt,
	}
}
