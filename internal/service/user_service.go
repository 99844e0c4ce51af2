package service

import (
	"ecolearn_backend/internal/model"
	"ecolearn_backend/internal/repository"
	"ecolearn_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserService covers profile reads/updates and the daily check-in streak.
type UserService struct {
	UserRepo     *repository.UserRepository
	CheckinRepo  *repository.CheckinRepository
	BadgeRepo    *repository.BadgeRepository
	ProgressRepo *repository.ProgressRepository
	Progression  *ProgressionService
}

func NewUserService(
	userRepo *repository.UserRepository,
	checkinRepo *repository.CheckinRepository,
	badgeRepo *repository.BadgeRepository,
	progressRepo *repository.ProgressRepository,
	progression *ProgressionService,
) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		CheckinRepo:  checkinRepo,
		BadgeRepo:    badgeRepo,
		ProgressRepo: progressRepo,
		Progression:  progression,
	}
}

// Profile is the per-user gamification snapshot the frontend renders.
type Profile struct {
	ID               uint                `json:"id"`
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	School           string              `json:"school"`
	Grade            string              `json:"grade"`
	Role             model.UserRole      `json:"role"`
	Avatar           string              `json:"avatar"`
	Points           int                 `json:"points"`
	Level            int                 `json:"level"`
	Streak           int                 `json:"streak"`
	Badges           []model.EarnedBadge `json:"badges"`
	CompletedLessons int64               `json:"completedLessons"`
	IsCheckedInToday bool                `json:"isCheckedInToday"`
	CreatedAt        time.Time           `json:"createdAt"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	badges, err := s.BadgeRepo.FindEarnedByUser(userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CountCompletedLessons(userID)
	if err != nil {
		return nil, err
	}

	streak, err := s.CurrentStreak(userID)
	if err != nil {
		return nil, err
	}

	checkedIn, err := s.IsCheckedInToday(userID)
	if err != nil {
		checkedIn = false
	}

	return &Profile{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		School:           user.School,
		Grade:            user.Grade,
		Role:             user.Role,
		Avatar:           user.Avatar,
		Points:           user.Points,
		Level:            s.Progression.Level(user.Points),
		Streak:           streak,
		Badges:           badges,
		CompletedLessons: completed,
		IsCheckedInToday: checkedIn,
		CreatedAt:        user.CreatedAt,
	}, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name   string `json:"name"`
	School string `json:"school"`
	Grade  string `json:"grade"`
	Avatar string `json:"avatar"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.School != "" {
		user.School = update.School
	}
	if update.Grade != "" {
		user.Grade = update.Grade
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) IsCheckedInToday(userID uint) (bool, error) {
	_, err := s.CheckinRepo.FindByUserAndDate(userID, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CurrentStreak reads the streak off the latest check-in. A streak older than
// yesterday has lapsed and reads as 0.
func (s *UserService) CurrentStreak(userID uint) (int, error) {
	latest, err := s.CheckinRepo.FindLatestByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	if daysBetween(latest.CheckinAt, time.Now()) > 1 {
		return 0, nil
	}
	return latest.StreakDays, nil
}

// CheckinResult reports a daily check-in.
type CheckinResult struct {
	StreakDays    int `json:"streakDays"`
	PointsAwarded int `json:"pointsAwarded"`
	Points        int `json:"points"`
	Level         int `json:"level"`
}

// Checkin records today's engagement. Consecutive calendar days extend the
// streak; a gap resets it to 1. A second check-in on the same day is rejected.
func (s *UserService) Checkin(userID uint) (*CheckinResult, error) {
	if checkedIn, err := s.IsCheckedInToday(userID); err != nil {
		return nil, err
	} else if checkedIn {
		return nil, util.ErrAlreadyCheckedIn
	}

	streak := 1
	latest, err := s.CheckinRepo.FindLatestByUser(userID)
	if err == nil && daysBetween(latest.CheckinAt, time.Now()) == 1 {
		streak = latest.StreakDays + 1
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.CheckinRepo.Create(&model.Checkin{
		UserID:     userID,
		CheckinAt:  time.Now(),
		StreakDays: streak,
	}); err != nil {
		return nil, err
	}

	points := s.Progression.Cfg.Progress.CheckinPoints
	update, err := s.Progression.AwardPoints(userID, points, "checkin")
	if err != nil {
		return nil, err
	}

	return &CheckinResult{
		StreakDays:    streak,
		PointsAwarded: points,
		Points:        update.Points,
		Level:         update.Level,
	}, nil
}

// daysBetween counts whole calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(bd.Sub(ad).Hours() / 24)
}
