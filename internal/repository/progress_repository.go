package repository

import (
	"ecolearn_backend/internal/model"

	"gorm.io/gorm"
)

// ProgressRepository owns the per-user join records: lesson completions and
// challenge participations.
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) HasCompletedLesson(userID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) CreateCompletion(completion *model.LessonCompletion) error {
	return r.DB.Create(completion).Error
}

func (r *ProgressRepository) CountCompletedLessons(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) FindCompletedLessonIDs(userID uint) (map[uint]bool, error) {
	var completions []model.LessonCompletion
	err := r.DB.Where("user_id = ?", userID).Find(&completions).Error
	if err != nil {
		return nil, err
	}

	ids := make(map[uint]bool, len(completions))
	for _, c := range completions {
		ids[c.LessonID] = true
	}
	return ids, nil
}

func (r *ProgressRepository) HasJoinedChallenge(userID, challengeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ChallengeParticipation{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) CreateParticipation(participation *model.ChallengeParticipation) error {
	return r.DB.Create(participation).Error
}

func (r *ProgressRepository) FindJoinedChallengeIDs(userID uint) (map[uint]bool, error) {
	var participations []model.ChallengeParticipation
	err := r.DB.Where("user_id = ?", userID).Find(&participations).Error
	if err != nil {
		return nil, err
	}

	ids := make(map[uint]bool, len(participations))
	for _, p := range participations {
		ids[p.ChallengeID] = true
	}
	return ids, nil
}

func (r *ProgressRepository) CountParticipants(challengeID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ChallengeParticipation{}).
		Where("challenge_id = ?", challengeID).
		Count(&count).Error
	return count, err
}
