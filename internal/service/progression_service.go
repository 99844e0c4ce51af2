package service

import (
	"ecolearn_backend/internal/config"
	"ecolearn_backend/internal/model"
	"ecolearn_backend/internal/repository"
	"ecolearn_backend/pkg/logger"
	"ecolearn_backend/pkg/monitoring"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Outcome is the typed result of a progression mutation. Callers branch on it
// instead of guessing from a silent no-op.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeAlreadyDone Outcome = "already_done"
)

// Badge names the progression engine awards on its own.
const (
	BadgeClimateChampion = "Climate Champion"
	BadgeEcoLegend       = "Eco Legend"
)

// ClimateChampionLessonCount is the distinct-lesson threshold for the
// Climate Champion badge.
const ClimateChampionLessonCount = 5

// EcoLegendLevel is the level threshold for the Eco Legend badge.
const EcoLegendLevel = 10

// LevelForPoints derives a level from a point total: one level per
// pointsPerLevel, starting at level 1. Level is never stored; this is the only
// place it comes from.
func LevelForPoints(points, pointsPerLevel int) int {
	if points < 0 {
		points = 0
	}
	return points/pointsPerLevel + 1
}

// ProgressionService owns the reward model: points, derived level, lesson
// completion, challenge participation and badge earning.
type ProgressionService struct {
	UserRepo      *repository.UserRepository
	LessonRepo    *repository.LessonRepository
	ChallengeRepo *repository.ChallengeRepository
	BadgeRepo     *repository.BadgeRepository
	ProgressRepo  *repository.ProgressRepository
	Cfg           *config.Config
	DB            *gorm.DB
}

func NewProgressionService(
	userRepo *repository.UserRepository,
	lessonRepo *repository.LessonRepository,
	challengeRepo *repository.ChallengeRepository,
	badgeRepo *repository.BadgeRepository,
	progressRepo *repository.ProgressRepository,
	cfg *config.Config,
	db *gorm.DB,
) *ProgressionService {
	return &ProgressionService{
		UserRepo:      userRepo,
		LessonRepo:    lessonRepo,
		ChallengeRepo: challengeRepo,
		BadgeRepo:     badgeRepo,
		ProgressRepo:  progressRepo,
		Cfg:           cfg,
		DB:            db,
	}
}

func (s *ProgressionService) Level(points int) int {
	return LevelForPoints(points, s.Cfg.Progress.PointsPerLevel)
}

// PointsUpdate reports the state after an award.
type PointsUpdate struct {
	Points       int           `json:"points"`
	Level        int           `json:"level"`
	EarnedBadges []model.Badge `json:"earnedBadges,omitempty"`
}

// AwardPoints adds delta to the user's total and reports the new total with
// its derived level. The level is always computed from the post-update total,
// re-read from the row so concurrent awards cannot report a stale base.
// Crossing the Eco Legend level threshold earns that badge once.
func (s *ProgressionService) AwardPoints(userID uint, delta int, source string) (*PointsUpdate, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, err
	}

	if err := s.UserRepo.AddPoints(userID, delta); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	update := &PointsUpdate{
		Points: user.Points,
		Level:  s.Level(user.Points),
	}

	if delta > 0 {
		monitoring.PointsAwarded.WithLabelValues(source).Add(float64(delta))
	}

	if s.Level(user.Points-delta) < EcoLegendLevel && update.Level >= EcoLegendLevel {
		if badge := s.tryEarnBadge(userID, BadgeEcoLegend); badge != nil {
			update.EarnedBadges = append(update.EarnedBadges, *badge)
		}
	}

	return update, nil
}

// CompletionResult reports a lesson completion attempt.
type CompletionResult struct {
	Outcome       Outcome       `json:"outcome"`
	PointsAwarded int           `json:"pointsAwarded"`
	Points        int           `json:"points"`
	Level         int           `json:"level"`
	EarnedBadges  []model.Badge `json:"earnedBadges,omitempty"`
}

// CompleteLesson marks a lesson completed for a user. The transition is
// once-only: a repeat call reports already_done and awards nothing. The fifth
// distinct completion earns the Climate Champion badge, at most once ever.
func (s *ProgressionService) CompleteLesson(userID, lessonID uint) (*CompletionResult, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &CompletionResult{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	done, err := s.ProgressRepo.HasCompletedLesson(userID, lessonID)
	if err != nil {
		return nil, err
	}
	if done {
		user, err := s.UserRepo.FindByID(userID)
		if err != nil {
			return nil, err
		}
		return &CompletionResult{
			Outcome: OutcomeAlreadyDone,
			Points:  user.Points,
			Level:   s.Level(user.Points),
		}, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		progressRepo := repository.NewProgressRepository(tx)
		userRepo := repository.NewUserRepository(tx)

		if err := progressRepo.CreateCompletion(&model.LessonCompletion{
			UserID:      userID,
			LessonID:    lessonID,
			CompletedAt: time.Now(),
		}); err != nil {
			return err
		}

		return userRepo.AddPoints(userID, lesson.Points)
	})
	if err != nil {
		return nil, err
	}

	monitoring.PointsAwarded.WithLabelValues("lesson").Add(float64(lesson.Points))

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{
		Outcome:       OutcomeOK,
		PointsAwarded: lesson.Points,
		Points:        user.Points,
		Level:         s.Level(user.Points),
	}

	completed, err := s.ProgressRepo.CountCompletedLessons(userID)
	if err != nil {
		return nil, err
	}
	// At-least-the-threshold, not equality: if the award failed on the fifth
	// completion, the next one retries it. EarnBadge's earned-row check keeps
	// it at most once.
	if completed >= ClimateChampionLessonCount {
		if badge := s.tryEarnBadge(userID, BadgeClimateChampion); badge != nil {
			result.EarnedBadges = append(result.EarnedBadges, *badge)
		}
	}

	if s.Level(user.Points-lesson.Points) < EcoLegendLevel && result.Level >= EcoLegendLevel {
		if badge := s.tryEarnBadge(userID, BadgeEcoLegend); badge != nil {
			result.EarnedBadges = append(result.EarnedBadges, *badge)
		}
	}

	return result, nil
}

// JoinResult reports a challenge join attempt.
type JoinResult struct {
	Outcome      Outcome `json:"outcome"`
	Participants int     `json:"participants"`
}

// JoinChallenge records a user joining a challenge. The participant counter
// moves by exactly one per user; a repeat join reports already_done and leaves
// the counter alone.
func (s *ProgressionService) JoinChallenge(userID, challengeID uint) (*JoinResult, error) {
	challenge, err := s.ChallengeRepo.FindByID(challengeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &JoinResult{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	joined, err := s.ProgressRepo.HasJoinedChallenge(userID, challengeID)
	if err != nil {
		return nil, err
	}
	if joined {
		return &JoinResult{
			Outcome:      OutcomeAlreadyDone,
			Participants: challenge.Participants,
		}, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		progressRepo := repository.NewProgressRepository(tx)
		challengeRepo := repository.NewChallengeRepository(tx)

		if err := progressRepo.CreateParticipation(&model.ChallengeParticipation{
			UserID:      userID,
			ChallengeID: challengeID,
			JoinedAt:    time.Now(),
		}); err != nil {
			return err
		}

		return challengeRepo.IncrementParticipants(challengeID)
	})
	if err != nil {
		return nil, err
	}

	return &JoinResult{
		Outcome:      OutcomeOK,
		Participants: challenge.Participants + 1,
	}, nil
}

// EarnResult reports a badge earn attempt.
type EarnResult struct {
	Outcome Outcome      `json:"outcome"`
	Badge   *model.Badge `json:"badge,omitempty"`
}

// EarnBadge appends a catalog badge to the user's earned list with an award
// timestamp. Re-earning reports already_done.
func (s *ProgressionService) EarnBadge(userID, badgeID uint) (*EarnResult, error) {
	badge, err := s.BadgeRepo.FindByID(badgeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &EarnResult{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	earned, err := s.BadgeRepo.HasEarned(userID, badgeID)
	if err != nil {
		return nil, err
	}
	if earned {
		return &EarnResult{Outcome: OutcomeAlreadyDone, Badge: badge}, nil
	}

	if err := s.BadgeRepo.CreateEarned(&model.EarnedBadge{
		UserID:   userID,
		BadgeID:  badge.ID,
		EarnedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	monitoring.BadgesEarned.Inc()

	return &EarnResult{Outcome: OutcomeOK, Badge: badge}, nil
}

// tryEarnBadge awards a well-known badge and logs a failure instead of
// failing the operation that triggered it; the points were already committed.
func (s *ProgressionService) tryEarnBadge(userID uint, name string) *model.Badge {
	badge, err := s.earnBadgeByName(userID, name)
	if err != nil {
		logger.Log.Warn("badge award failed",
			zap.Uint("user_id", userID),
			zap.String("badge", name),
			zap.Error(err),
		)
		return nil
	}
	return badge
}

// earnBadgeByName awards a well-known badge if it exists in the catalog and
// was not earned before. Returns the badge only when it was newly earned.
func (s *ProgressionService) earnBadgeByName(userID uint, name string) (*model.Badge, error) {
	badge, err := s.BadgeRepo.FindByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	result, err := s.EarnBadge(userID, badge.ID)
	if err != nil {
		return nil, err
	}
	if result.Outcome != OutcomeOK {
		return nil, nil
	}
	return badge, nil
}
