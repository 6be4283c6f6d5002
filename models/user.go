// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

var AllModels []any

type User struct {
	ID        uint    `gorm:"primaryKey"`
	Username  string  `gorm:"size:150;not null;uniqueIndex"`
	Email     string  `gorm:"size:255;not null;uniqueIndex"`
	Password  string  `gorm:"not null"`
	FirstName *string `gorm:"size:150;default:null"`
	LastName  *string `gorm:"size:150;default:null"`
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func init() {
	AllModels = append(AllModels, &User{})
}
