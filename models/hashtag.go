// SPDX-License-Identifier: GPL-3.0-only

package models

// Hashtags are global and name-unique. They are created on first use and
// never reaped when the last todo drops them.
type Hashtag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null;uniqueIndex"`
}

func init() {
	AllModels = append(AllModels, &Hashtag{})
}
