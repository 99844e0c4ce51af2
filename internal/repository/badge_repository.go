package repository

import (
	"ecolearn_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindByID(id uint) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.First(&badge, id).Error
	return &badge, err
}

func (r *BadgeRepository) FindByName(name string) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.Where("name = ?", name).First(&badge).Error
	return &badge, err
}

func (r *BadgeRepository) FindAll() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Order("id").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindEarnedByUser(userID uint) ([]model.EarnedBadge, error) {
	var earned []model.EarnedBadge
	err := r.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at").
		Find(&earned).Error
	return earned, err
}

func (r *BadgeRepository) HasEarned(userID, badgeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.EarnedBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error
	return count > 0, err
}

func (r *BadgeRepository) CreateEarned(earned *model.EarnedBadge) error {
	return r.DB.Create(earned).Error
}
