package specification

import "gorm.io/gorm"

type ActivePlans struct{}

func (s ActivePlans) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ByAction struct {
	Action string
}

func (s ByAction) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("action = ?", s.Action)
}
