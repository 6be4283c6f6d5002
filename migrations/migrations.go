// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"todoapp-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_backfill_todo_priority",
			Migrate: func(tx *gorm.DB) error {
				// Rows created before the priority column had a default.
				if err := tx.Model(&models.Todo{}).
					Where("priority IS NULL OR priority < 1").
					Update("priority", 1).Error; err != nil {
					return fmt.Errorf("failed to backfill todo priority: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
		{
			ID: "002_backfill_apikey_label",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Model(&models.APIKey{}).
					Where("label = ''").
					Update("label", "login").Error; err != nil {
					return fmt.Errorf("failed to backfill api key label: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
