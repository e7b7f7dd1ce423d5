package models

import "gorm.io/gorm"

type Tag struct {
	gorm.Model

	Name string `gorm:"not null"`

	// Relationships
	Todos []Todo `gorm:"many2many:todo_tags" json:"-"`
}
