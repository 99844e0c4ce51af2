package model

import "encoding/json"

// QuizQuestion is a single-answer multiple-choice question attached to a lesson.
type QuizQuestion struct {
	BaseModel
	LessonID uint            `gorm:"index;not null" json:"lessonId"`
	Question string          `gorm:"size:500;not null" json:"question"`
	Options  json.RawMessage `gorm:"type:json" json:"options"` // JSON: []string
	Answer   string          `gorm:"size:200;not null" json:"-"`
	Order    int             `gorm:"default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizResult is one graded attempt. Every attempt is kept, passed or not.
type QuizResult struct {
	BaseModel
	UserID   uint            `gorm:"index;not null" json:"userId"`
	LessonID uint            `gorm:"index;not null" json:"lessonId"`
	Score    int             `gorm:"default:0" json:"score"` // 0-100 percent
	Correct  int             `gorm:"default:0" json:"correct"`
	Total    int             `gorm:"default:0" json:"total"`
	Passed   bool            `gorm:"default:false" json:"passed"`
	Answers  json.RawMessage `gorm:"type:json" json:"answers"` // JSON: map[questionID]chosen option
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
