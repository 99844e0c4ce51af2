package service

import (
	"ecolearn_backend/internal/config"
	"ecolearn_backend/internal/model"
	"ecolearn_backend/internal/repository"
	"ecolearn_backend/pkg/database"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database seeded with the default catalog. The
// shared-cache name keeps gorm's pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := database.SeedCatalog(db); err != nil {
		t.Fatalf("seed test db: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Progress: config.ProgressionConfig{
			PointsPerLevel: 500,
			QuizPassScore:  70,
			CheckinPoints:  10,
		},
	}
}

func newTestProgression(t *testing.T, db *gorm.DB) *ProgressionService {
	t.Helper()
	return NewProgressionService(
		repository.NewUserRepository(db),
		repository.NewLessonRepository(db),
		repository.NewChallengeRepository(db),
		repository.NewBadgeRepository(db),
		repository.NewProgressRepository(db),
		testConfig(),
		db,
	)
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@test.local", strings.ToLower(name)),
		Password: "irrelevant",
		Role:     model.Student,
		School:   "Green Valley School",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestLesson(t *testing.T, db *gorm.DB, title string, points int) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		Title:      title,
		Category:   "Climate",
		Duration:   "10 min",
		Difficulty: model.LessonBeginner,
		Points:     points,
		Published:  true,
	}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	return lesson
}
