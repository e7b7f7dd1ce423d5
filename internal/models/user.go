package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"`
	// Nullable so password-only accounts never collide on the index
	GoogleID  *string `gorm:"uniqueIndex"`
	Name      string
	Avatar    string
	LastLogin time.Time

	// Raw identity-provider payload from the last successful callback
	Profile datatypes.JSON `gorm:"type:jsonb" json:"-"`

	// Relationships
	Todos []Todo `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
