package model

import "time"

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// Badge is a catalog definition. An earned badge is a separate EarnedBadge row
// pointing back at the catalog entry.
// swagger:model Badge
type Badge struct {
	BaseModel
	Name        string      `gorm:"size:100;unique;not null" json:"name"`
	Description string      `gorm:"size:500" json:"description"`
	Icon        string      `gorm:"size:50" json:"icon"`
	Rarity      BadgeRarity `gorm:"size:20;default:'common'" json:"rarity"`
}

func (Badge) TableName() string {
	return "badges"
}

// EarnedBadge records a single badge award. The unique index makes re-earning
// a constraint violation rather than a judgement call.
type EarnedBadge struct {
	BaseModel
	UserID   uint      `gorm:"index:idx_user_badge,unique;not null" json:"userId"`
	BadgeID  uint      `gorm:"index:idx_user_badge,unique;not null" json:"badgeId"`
	EarnedAt time.Time `gorm:"not null" json:"earnedAt"`
	Badge    Badge     `gorm:"foreignKey:BadgeID" json:"badge"`
}

func (EarnedBadge) TableName() string {
	return "earned_badges"
}
