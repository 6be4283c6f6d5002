// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Todo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Input      string    `gorm:"size:100;not null"`
	Done       bool      `gorm:"default:false"`
	Priority   int       `gorm:"default:1"`
	FinishedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	UserID     uint
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Hashtags   []Hashtag `gorm:"many2many:todo_hashtags;"`
}

func (todo *Todo) BeforeCreate(tx *gorm.DB) (err error) {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	return
}

func init() {
	AllModels = append(AllModels, &Todo{})
}
