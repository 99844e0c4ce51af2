package model

type ChallengeDifficulty string

const (
	ChallengeEasy   ChallengeDifficulty = "easy"
	ChallengeMedium ChallengeDifficulty = "medium"
	ChallengeHard   ChallengeDifficulty = "hard"
)

type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeUpcoming  ChallengeStatus = "upcoming"
	ChallengeCompleted ChallengeStatus = "completed"
)

// Challenge is a multi-participant action campaign. Participants is kept as a
// counter for cheap listing but is only ever moved together with a
// ChallengeParticipation row, one per user.
// swagger:model Challenge
type Challenge struct {
	BaseModel
	Title        string              `gorm:"size:200;not null" json:"title"`
	Description  string              `gorm:"size:1000" json:"description"`
	Category     string              `gorm:"size:50;index" json:"category"`
	Difficulty   ChallengeDifficulty `gorm:"size:20;default:'medium'" json:"difficulty"`
	Points       int                 `gorm:"default:0" json:"points"`
	Duration     string              `gorm:"size:20" json:"duration"` // display label, e.g. "30 days"
	Participants int                 `gorm:"default:0" json:"participants"`
	Status       ChallengeStatus     `gorm:"size:20;default:'upcoming';index" json:"status"`
	Progress     int                 `gorm:"default:0" json:"progress"` // 0-100
	Image        string              `gorm:"size:500" json:"image"`
	CreatedBy    uint                `gorm:"index" json:"createdBy"`
}

func (Challenge) TableName() string {
	return "challenges"
}
