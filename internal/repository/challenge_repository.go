package repository

import (
	"ecolearn_backend/internal/model"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.First(&challenge, id).Error
	return &challenge, err
}

func (r *ChallengeRepository) FindAll() ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.Order("id").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) FindByStatus(status model.ChallengeStatus) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.Where("status = ?", status).Order("id").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) Update(challenge *model.Challenge) error {
	return r.DB.Save(challenge).Error
}

func (r *ChallengeRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Challenge{}, id).Error
}

// IncrementParticipants bumps the cached counter by exactly one.
func (r *ChallengeRepository) IncrementParticipants(id uint) error {
	return r.DB.Model(&model.Challenge{}).
		Where("id = ?", id).
		Update("participants", gorm.Expr("participants + ?", 1)).
		Error
}
