package model

import "time"

// LessonCompletion marks one lesson completed by one user. The unique pair
// index is what makes completion a one-way, once-only transition.
type LessonCompletion struct {
	BaseModel
	UserID      uint      `gorm:"index:idx_user_lesson,unique;not null" json:"userId"`
	LessonID    uint      `gorm:"index:idx_user_lesson,unique;not null" json:"lessonId"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}

// ChallengeParticipation marks one user joined one challenge.
type ChallengeParticipation struct {
	BaseModel
	UserID      uint      `gorm:"index:idx_user_challenge,unique;not null" json:"userId"`
	ChallengeID uint      `gorm:"index:idx_user_challenge,unique;not null" json:"challengeId"`
	JoinedAt    time.Time `gorm:"not null" json:"joinedAt"`
}

func (ChallengeParticipation) TableName() string {
	return "challenge_participations"
}
