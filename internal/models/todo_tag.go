package models

import "time"

// TodoTag is the join row between todos and tags. A todo may not carry the
// same tag twice; rows are removed with their todo or tag, never soft-deleted.
type TodoTag struct {
	ID        uint `gorm:"primarykey"`
	TodoID    uint `gorm:"not null;uniqueIndex:idx_todo_tag"`
	TagID     uint `gorm:"not null;uniqueIndex:idx_todo_tag"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Todo Todo `gorm:"foreignKey:TodoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Tag  Tag  `gorm:"foreignKey:TagID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
