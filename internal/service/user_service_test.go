package service

import (
	"ecolearn_backend/internal/model"
	"ecolearn_backend/internal/repository"
	"ecolearn_backend/internal/util"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTestUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	progression := newTestProgression(t, db)
	return NewUserService(
		progression.UserRepo,
		repository.NewCheckinRepository(db),
		progression.BadgeRepo,
		progression.ProgressRepo,
		progression,
	)
}

func TestCheckinStartsStreak(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, "Kavya")

	result, err := svc.Checkin(user.ID)
	if err != nil {
		t.Fatalf("Checkin: %v", err)
	}
	if result.StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", result.StreakDays)
	}
	if result.PointsAwarded != 10 {
		t.Errorf("PointsAwarded = %d, want 10", result.PointsAwarded)
	}
	if result.Points != 10 {
		t.Errorf("Points = %d, want 10", result.Points)
	}
}

func TestCheckinTwiceSameDayRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, "Manish")

	if _, err := svc.Checkin(user.ID); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Checkin(user.ID)
	if !errors.Is(err, util.ErrAlreadyCheckedIn) {
		t.Fatalf("second Checkin err = %v, want ErrAlreadyCheckedIn", err)
	}

	fresh, err := svc.UserRepo.FindByID(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Points != 10 {
		t.Errorf("points after rejected check-in = %d, want 10", fresh.Points)
	}
}

func TestCheckinConsecutiveDayExtendsStreak(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, "Pooja")

	yesterday := &model.Checkin{
		UserID:     user.ID,
		CheckinAt:  time.Now().AddDate(0, 0, -1),
		StreakDays: 3,
	}
	if err := db.Create(yesterday).Error; err != nil {
		t.Fatal(err)
	}

	result, err := svc.Checkin(user.ID)
	if err != nil {
		t.Fatalf("Checkin: %v", err)
	}
	if result.StreakDays != 4 {
		t.Errorf("StreakDays = %d, want 4", result.StreakDays)
	}
}

func TestCheckinAfterGapResetsStreak(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, "Deepak")

	old := &model.Checkin{
		UserID:     user.ID,
		CheckinAt:  time.Now().AddDate(0, 0, -3),
		StreakDays: 5,
	}
	if err := db.Create(old).Error; err != nil {
		t.Fatal(err)
	}

	streak, err := svc.CurrentStreak(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 0 {
		t.Errorf("lapsed CurrentStreak = %d, want 0", streak)
	}

	result, err := svc.Checkin(user.ID)
	if err != nil {
		t.Fatalf("Checkin: %v", err)
	}
	if result.StreakDays != 1 {
		t.Errorf("StreakDays after gap = %d, want 1", result.StreakDays)
	}
}

func TestGetProfileDerivesLevel(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t, db)
	user := createTestUser(t, db, "Ishaan")

	if err := db.Model(user).Update("points", 1200).Error; err != nil {
		t.Fatal(err)
	}

	profile, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Points != 1200 {
		t.Errorf("Points = %d, want 1200", profile.Points)
	}
	if profile.Level != 3 {
		t.Errorf("Level = %d, want 3", profile.Level)
	}
	if profile.IsCheckedInToday {
		t.Error("IsCheckedInToday = true, want false")
	}
}
