package database

import (
	"strings"

	"gorm.io/gorm"
)

// SearchOrganizations matches a case-insensitive substring against name,
// slug or org_email.
func SearchOrganizations(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" {
			return db
		}
		pattern := "%" + strings.ToLower(search) + "%"
		return db.Where(
			"(LOWER(organizations.name) LIKE ? OR LOWER(organizations.slug) LIKE ? OR LOWER(organizations.org_email) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
}

// WithStatus filters on an exact status match; an empty status is a no-op.
func WithStatus(table, status string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where(table+".status = ?", status)
	}
}

// NewestFirst orders by creation time descending, breaking ties on id.
func NewestFirst(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".created_at DESC").Order(table + ".id DESC")
	}
}
