package models

import "gorm.io/gorm"

type Todo struct {
	gorm.Model

	Title      string `gorm:"not null"`
	Completed  bool   `gorm:"default:false"`
	UserID     uint   `gorm:"not null;index"` // Owner, immutable after creation
	CategoryID *uint  `gorm:"index"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID"`
	Tags     []Tag     `gorm:"many2many:todo_tags"`
}
