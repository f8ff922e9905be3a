package effective

import (
	"time"

	"gorm.io/gorm"
)

// On scopes an effective-dated table to the record covering the given day:
// effective_from <= day and (effective_to is null or day <= effective_to).
// Work schedules and salary history share this window rule.
func On(day time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)",
			day, day,
		)
	}
}

// Open scopes to the current open-ended record.
func Open() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("effective_to IS NULL")
	}
}
