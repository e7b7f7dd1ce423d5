package utils

import (
	"time"

	"gorm.io/gorm"
)

// FormatTimestamp renders a timestamp for API responses.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FormatDeletedAt renders a soft-delete marker, nil while the row is live.
func FormatDeletedAt(deletedAt gorm.DeletedAt) *string {
	if !deletedAt.Valid {
		return nil
	}
	formatted := FormatTimestamp(deletedAt.Time)
	return &formatted
}
