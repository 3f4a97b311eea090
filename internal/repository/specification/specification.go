package specification

import "gorm.io/gorm"

// Specification narrows a query. Implementations must be safe to reuse.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Func adapts a plain scope function to a Specification.
type Func func(db *gorm.DB) *gorm.DB

func (f Func) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

// ApplyAll chains specs in order. Nil entries are skipped.
func ApplyAll(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		if spec == nil {
			continue
		}
		db = spec.Apply(db)
	}
	return db
}
