package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model

	Name string `gorm:"not null"`

	// Relationships
	Todos []Todo `gorm:"foreignKey:CategoryID"`
}
