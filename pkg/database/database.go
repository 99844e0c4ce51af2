package database

import (
	"ecolearn_backend/internal/config"
	"ecolearn_backend/internal/model"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedCatalog(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates all tables. Kept separate from InitDB so tests
// can run it against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.QuizQuestion{},
		&model.QuizResult{},
		&model.Challenge{},
		&model.Badge{},
		&model.EarnedBadge{},
		&model.LessonCompletion{},
		&model.ChallengeParticipation{},
		&model.Checkin{},
	)
}

func intsJSON(v ...int) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func stringsJSON(v ...string) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// SeedCatalog inserts the default lesson/challenge/badge catalogs on an empty
// database. Existing rows are left alone.
func SeedCatalog(db *gorm.DB) error {
	var badgeCount int64
	db.Model(&model.Badge{}).Count(&badgeCount)
	if badgeCount == 0 {
		defaultBadges := []model.Badge{
			{Name: "Climate Champion", Description: "Completed 5 climate-related lessons", Icon: "🌍", Rarity: model.RarityCommon},
			{Name: "Water Warrior", Description: "Saved 1000 liters of water", Icon: "💧", Rarity: model.RarityRare},
			{Name: "Tree Hugger", Description: "Planted 50 trees", Icon: "🌳", Rarity: model.RarityEpic},
			{Name: "Eco Legend", Description: "Reached level 10", Icon: "👑", Rarity: model.RarityLegendary},
		}
		for _, b := range defaultBadges {
			if err := db.Create(&b).Error; err != nil {
				return err
			}
		}
	}

	var lessonCount int64
	db.Model(&model.Lesson{}).Count(&lessonCount)
	if lessonCount == 0 {
		defaultLessons := []model.Lesson{
			{
				Title:       "Climate Change Basics",
				Description: "Understanding the science behind climate change and its impact on India",
				Category:    "Climate",
				Duration:    "15 min",
				Difficulty:  model.LessonBeginner,
				Points:      100,
				SDGGoals:    intsJSON(13, 14, 15),
				Published:   true,
			},
			{
				Title:       "Water Conservation Techniques",
				Description: "Learn practical water saving methods for homes and schools",
				Category:    "Water",
				Duration:    "20 min",
				Difficulty:  model.LessonBeginner,
				Points:      120,
				SDGGoals:    intsJSON(6, 14),
				Published:   true,
			},
			{
				Title:       "Renewable Energy in India",
				Description: "Explore solar, wind, and other renewable energy sources",
				Category:    "Energy",
				Duration:    "25 min",
				Difficulty:  model.LessonIntermediate,
				Points:      150,
				SDGGoals:    intsJSON(7, 13),
				Published:   true,
			},
			{
				Title:       "Biodiversity Conservation",
				Description: "Protecting India's rich flora and fauna",
				Category:    "Wildlife",
				Duration:    "18 min",
				Difficulty:  model.LessonIntermediate,
				Points:      130,
				SDGGoals:    intsJSON(14, 15),
				Published:   true,
			},
		}
		for i := range defaultLessons {
			if err := db.Create(&defaultLessons[i]).Error; err != nil {
				return err
			}
		}

		defaultQuestions := []model.QuizQuestion{
			{
				LessonID: defaultLessons[0].ID,
				Question: "Which gas is the primary driver of human-caused climate change?",
				Options:  stringsJSON("Carbon dioxide", "Oxygen", "Nitrogen", "Helium"),
				Answer:   "Carbon dioxide",
				Order:    1,
			},
			{
				LessonID: defaultLessons[1].ID,
				Question: "What percentage of Earth's water is freshwater?",
				Options:  stringsJSON("2.5%", "10%", "25%", "50%"),
				Answer:   "2.5%",
				Order:    1,
			},
			{
				LessonID: defaultLessons[2].ID,
				Question: "Which of these is a renewable energy source?",
				Options:  stringsJSON("Solar", "Coal", "Natural gas", "Diesel"),
				Answer:   "Solar",
				Order:    1,
			},
			{
				LessonID: defaultLessons[3].ID,
				Question: "Biodiversity refers to the variety of what?",
				Options:  stringsJSON("Life on Earth", "Rock formations", "Weather patterns", "Ocean currents"),
				Answer:   "Life on Earth",
				Order:    1,
			},
		}
		for _, q := range defaultQuestions {
			if err := db.Create(&q).Error; err != nil {
				return err
			}
		}
	}

	var challengeCount int64
	db.Model(&model.Challenge{}).Count(&challengeCount)
	if challengeCount == 0 {
		defaultChallenges := []model.Challenge{
			{
				Title:       "Plant 100 Trees Challenge",
				Description: "Organize a tree plantation drive in your community",
				Category:    "Action",
				Difficulty:  model.ChallengeMedium,
				Points:      500,
				Duration:    "30 days",
				Status:      model.ChallengeActive,
				Progress:    65,
			},
			{
				Title:       "Zero Waste Week",
				Description: "Reduce your household waste to zero for one week",
				Category:    "Lifestyle",
				Difficulty:  model.ChallengeHard,
				Points:      300,
				Duration:    "7 days",
				Status:      model.ChallengeActive,
				Progress:    23,
			},
			{
				Title:       "Clean Water Initiative",
				Description: "Organize a water body cleaning drive",
				Category:    "Community",
				Difficulty:  model.ChallengeMedium,
				Points:      400,
				Duration:    "14 days",
				Status:      model.ChallengeUpcoming,
			},
		}
		for _, ch := range defaultChallenges {
			if err := db.Create(&ch).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
