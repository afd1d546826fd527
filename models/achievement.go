// models/achievement.go
package models

import "time"

// UserAchievement is an unlocked badge snapshot. AchievementID references an
// entry of the fixed catalog in services; description and icon are copied at
// unlock time so later catalog edits never rewrite history.
//
// The engine guarantees at-most-one row per (user, achievement); the
// composite unique index is a store-level backstop.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string    `gorm:"not null;size:64;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
