package model

import "encoding/json"

type LessonDifficulty string

const (
	LessonBeginner     LessonDifficulty = "beginner"
	LessonIntermediate LessonDifficulty = "intermediate"
	LessonAdvanced     LessonDifficulty = "advanced"
)

// Lesson is a catalog entry. Per-user completion lives in LessonCompletion,
// never on the lesson row itself.
// swagger:model Lesson
type Lesson struct {
	BaseModel
	Title       string           `gorm:"size:200;not null" json:"title"`
	Description string           `gorm:"size:1000" json:"description"`
	Category    string           `gorm:"size:50;index" json:"category"`
	Duration    string           `gorm:"size:20" json:"duration"` // display label, e.g. "15 min"
	Difficulty  LessonDifficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	Points      int              `gorm:"default:0" json:"points"`
	Image       string           `gorm:"size:500" json:"image"`
	VideoURL    string           `gorm:"size:500" json:"videoUrl,omitempty"`
	SDGGoals    json.RawMessage  `gorm:"type:json" json:"sdgGoals"` // JSON: []int, UN SDG numbers
	Published   bool             `gorm:"default:true" json:"published"`
	CreatedBy   uint             `gorm:"index" json:"createdBy"`
}

func (Lesson) TableName() string {
	return "lessons"
}
