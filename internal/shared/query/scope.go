package query

import (
	"strings"

	"gorm.io/gorm"
)

// Active keeps rows whose soft-delete flag is still 0.
func Active(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".desativado = ?", 0)
	}
}

// Paginate applies LIMIT, and OFFSET only past the first page.
func Paginate(p ListParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Limit == nil {
			return db
		}
		db = db.Limit(*p.Limit)
		if offset, ok := p.Offset(); ok {
			db = db.Offset(offset)
		}
		return db
	}
}

// Contains is a case-insensitive substring match on column.
func Contains(column, term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE ?", Pattern(term))
	}
}

// Pattern wraps term for a LIKE comparison against a lowered column.
func Pattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
