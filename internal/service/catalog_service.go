package service

import (
	"ecolearn_backend/internal/model"
	"ecolearn_backend/internal/repository"
	"errors"

	"gorm.io/gorm"
)

// CatalogService renders the shared lesson/challenge/badge catalogs as
// per-user views: the catalogs themselves carry no user state.
type CatalogService struct {
	LessonRepo    *repository.LessonRepository
	ChallengeRepo *repository.ChallengeRepository
	BadgeRepo     *repository.BadgeRepository
	ProgressRepo  *repository.ProgressRepository
}

func NewCatalogService(
	lessonRepo *repository.LessonRepository,
	challengeRepo *repository.ChallengeRepository,
	badgeRepo *repository.BadgeRepository,
	progressRepo *repository.ProgressRepository,
) *CatalogService {
	return &CatalogService{
		LessonRepo:    lessonRepo,
		ChallengeRepo: challengeRepo,
		BadgeRepo:     badgeRepo,
		ProgressRepo:  progressRepo,
	}
}

// LessonView is a catalog lesson with the caller's completion state.
type LessonView struct {
	model.Lesson
	Completed bool `json:"completed"`
}

func (s *CatalogService) ListLessons(userID uint) ([]LessonView, error) {
	lessons, err := s.LessonRepo.FindPublished()
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.FindCompletedLessonIDs(userID)
	if err != nil {
		return nil, err
	}

	views := make([]LessonView, len(lessons))
	for i, lesson := range lessons {
		views[i] = LessonView{
			Lesson:    lesson,
			Completed: completed[lesson.ID],
		}
	}
	return views, nil
}

// LessonDetail adds the quiz questions, with correct answers stripped by the
// QuizQuestion JSON encoding.
type LessonDetail struct {
	LessonView
	Quiz []model.QuizQuestion `json:"quiz"`
}

func (s *CatalogService) GetLesson(userID, lessonID uint) (*LessonDetail, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}

	done, err := s.ProgressRepo.HasCompletedLesson(userID, lessonID)
	if err != nil {
		return nil, err
	}

	questions, err := s.LessonRepo.FindQuestions(lessonID)
	if err != nil {
		return nil, err
	}

	return &LessonDetail{
		LessonView: LessonView{Lesson: *lesson, Completed: done},
		Quiz:       questions,
	}, nil
}

// ChallengeView is a catalog challenge with the caller's participation state.
type ChallengeView struct {
	model.Challenge
	Joined bool `json:"joined"`
}

func (s *CatalogService) ListChallenges(userID uint) ([]ChallengeView, error) {
	challenges, err := s.ChallengeRepo.FindAll()
	if err != nil {
		return nil, err
	}

	joined, err := s.ProgressRepo.FindJoinedChallengeIDs(userID)
	if err != nil {
		return nil, err
	}

	views := make([]ChallengeView, len(challenges))
	for i, challenge := range challenges {
		views[i] = ChallengeView{
			Challenge: challenge,
			Joined:    joined[challenge.ID],
		}
	}
	return views, nil
}

func (s *CatalogService) GetChallenge(userID, challengeID uint) (*ChallengeView, error) {
	challenge, err := s.ChallengeRepo.FindByID(challengeID)
	if err != nil {
		return nil, err
	}

	joined, err := s.ProgressRepo.HasJoinedChallenge(userID, challengeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		joined = false
	} else if err != nil {
		return nil, err
	}

	return &ChallengeView{Challenge: *challenge, Joined: joined}, nil
}

// BadgeView is a catalog badge with the caller's earned marker.
type BadgeView struct {
	model.Badge
	Earned bool `json:"earned"`
}

func (s *CatalogService) ListBadges(userID uint) ([]BadgeView, error) {
	badges, err := s.BadgeRepo.FindAll()
	if err != nil {
		return nil, err
	}

	earned, err := s.BadgeRepo.FindEarnedByUser(userID)
	if err != nil {
		return nil, err
	}

	earnedIDs := make(map[uint]bool, len(earned))
	for _, e := range earned {
		earnedIDs[e.BadgeID] = true
	}

	views := make([]BadgeView, len(badges))
	for i, badge := range badges {
		views[i] = BadgeView{
			Badge:  badge,
			Earned: earnedIDs[badge.ID],
		}
	}
	return views, nil
}
