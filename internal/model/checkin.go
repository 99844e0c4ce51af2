package model

import "time"

// Checkin records one daily engagement. StreakDays is the consecutive-day count
// as of this check-in; the latest row carries the user's current streak.
// swagger:model Checkin
type Checkin struct {
	BaseModel
	UserID     uint      `gorm:"index;not null" json:"userId"`
	CheckinAt  time.Time `gorm:"not null;index" json:"checkinAt"`
	StreakDays int       `gorm:"default:1" json:"streakDays"`
}

func (Checkin) TableName() string {
	return "checkins"
}
