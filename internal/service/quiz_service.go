package service

import (
	"ecolearn_backend/internal/config"
	"ecolearn_backend/internal/model"
	"ecolearn_backend/internal/repository"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// QuizScore turns a correct count into an integer percent. An empty quiz is
// defined as 0%, i.e. an automatic fail, never a division by zero.
func QuizScore(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return correct * 100 / total
}

// QuizService is the completion gate: it grades a lesson quiz and, on a pass,
// drives the once-only completion flow.
type QuizService struct {
	LessonRepo  *repository.LessonRepository
	Progression *ProgressionService
	Cfg         *config.Config
}

func NewQuizService(lessonRepo *repository.LessonRepository, progression *ProgressionService, cfg *config.Config) *QuizService {
	return &QuizService{
		LessonRepo:  lessonRepo,
		Progression: progression,
		Cfg:         cfg,
	}
}

// QuizSubmission maps question id to the chosen option string.
type QuizSubmission struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

// QuizOutcome reports a graded attempt, plus the completion result when the
// attempt passed.
type QuizOutcome struct {
	Score      int               `json:"score"`
	Correct    int               `json:"correct"`
	Total      int               `json:"total"`
	Passed     bool              `json:"passed"`
	Completion *CompletionResult `json:"completion,omitempty"`
}

// SubmitQuiz grades an attempt against the lesson's questions. The pass
// boundary is inclusive: score >= the configured threshold passes. Every
// attempt is recorded; failed attempts mutate nothing else and may be retried
// without limit.
func (s *QuizService) SubmitQuiz(userID, lessonID uint, submission QuizSubmission) (*QuizOutcome, error) {
	_, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.LessonRepo.FindQuestions(lessonID)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, question := range questions {
		if answer, ok := submission.Answers[question.ID]; ok && answer == question.Answer {
			correct++
		}
	}

	score := QuizScore(correct, len(questions))
	passed := len(questions) > 0 && score >= s.Cfg.Progress.QuizPassScore

	answersJSON, _ := json.Marshal(submission.Answers)
	if err := s.LessonRepo.SaveQuizResult(&model.QuizResult{
		UserID:   userID,
		LessonID: lessonID,
		Score:    score,
		Correct:  correct,
		Total:    len(questions),
		Passed:   passed,
		Answers:  answersJSON,
	}); err != nil {
		return nil, err
	}

	outcome := &QuizOutcome{
		Score:   score,
		Correct: correct,
		Total:   len(questions),
		Passed:  passed,
	}

	if passed {
		completion, err := s.Progression.CompleteLesson(userID, lessonID)
		if err != nil {
			return nil, err
		}
		outcome.Completion = completion
	}

	return outcome, nil
}
