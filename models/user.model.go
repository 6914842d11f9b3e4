package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username            string    `gorm:"unique;not null"`
	Password            string    `gorm:"not null"`
	UserType            string    `gorm:"default:'other'"` // student, farmer, unemployed, worker, other
	LastLogin           time.Time `gorm:"default:NULL"`
	FailedLoginAttempts int       `gorm:"default:0"`
	LastFailedLogin     *time.Time
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
