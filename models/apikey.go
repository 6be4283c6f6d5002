// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

// APIKey rows are deleted physically, on logout and by the expiration
// sweeper, so there is no soft-delete column here.
type APIKey struct {
	ID           uint   `gorm:"primaryKey"`
	Prefix       string `gorm:"size:16;not null;uniqueIndex"`
	HashedSecret string `gorm:"size:64;not null"`
	Label        string `gorm:"size:64;not null"`
	ExpiresAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserID       uint
	User         User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &APIKey{})
}
