// models/activity.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityTransport   ActivityType = "transport"
	ActivityElectricity ActivityType = "electricity"
	ActivityFood        ActivityType = "food"
	ActivityFlight      ActivityType = "flight"
	ActivityBiking      ActivityType = "biking"
	ActivityRecycling   ActivityType = "recycling"
)

// Activity is a single logged environmental activity. Rows are immutable
// once created; only the logging endpoint creates them.
type Activity struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	PublicID string       `gorm:"uniqueIndex;size:36" json:"public_id"`
	UserID   uint         `gorm:"not null;index" json:"user_id"`
	Type     ActivityType `gorm:"not null;index" json:"type"`
	Value    float64      `gorm:"not null" json:"value"`
	Unit     string       `gorm:"default:'unit'" json:"unit"`
	Date     time.Time    `gorm:"not null;index" json:"date"`

	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.PublicID == "" {
		a.PublicID = uuid.New().String()
	}
	return nil
}
