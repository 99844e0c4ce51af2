package service

import (
	"ecolearn_backend/internal/model"
	"ecolearn_backend/internal/repository"
	"ecolearn_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ContentService is the teacher-facing catalog manager: lessons, quiz
// questions, challenges, and lesson media.
type ContentService struct {
	LessonRepo    *repository.LessonRepository
	ChallengeRepo *repository.ChallengeRepository
	Storage       *StorageService
}

func NewContentService(lessonRepo *repository.LessonRepository, challengeRepo *repository.ChallengeRepository, storage *StorageService) *ContentService {
	return &ContentService{
		LessonRepo:    lessonRepo,
		ChallengeRepo: challengeRepo,
		Storage:       storage,
	}
}

// LessonInput carries the teacher-editable lesson fields.
type LessonInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Duration    string `json:"duration"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Points      int    `json:"points" binding:"required,min=1"`
	Image       string `json:"image"`
	SDGGoals    []int  `json:"sdgGoals"`
	Published   bool   `json:"published"`
}

func (s *ContentService) CreateLesson(teacherID uint, input LessonInput) (*model.Lesson, error) {
	goals, _ := json.Marshal(input.SDGGoals)

	difficulty := model.LessonDifficulty(input.Difficulty)
	if difficulty == "" {
		difficulty = model.LessonBeginner
	}

	lesson := &model.Lesson{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Duration:    input.Duration,
		Difficulty:  difficulty,
		Points:      input.Points,
		Image:       input.Image,
		SDGGoals:    goals,
		Published:   input.Published,
		CreatedBy:   teacherID,
	}

	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) UpdateLesson(lessonID uint, input LessonInput) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}

	goals, _ := json.Marshal(input.SDGGoals)

	lesson.Title = input.Title
	lesson.Description = input.Description
	lesson.Category = input.Category
	if input.Duration != "" {
		lesson.Duration = input.Duration
	}
	if input.Difficulty != "" {
		lesson.Difficulty = model.LessonDifficulty(input.Difficulty)
	}
	lesson.Points = input.Points
	if input.Image != "" {
		lesson.Image = input.Image
	}
	lesson.SDGGoals = goals
	lesson.Published = input.Published

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) DeleteLesson(lessonID uint) error {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		return util.ErrLessonNotFound
	}
	return s.LessonRepo.Delete(lessonID)
}

// QuestionInput carries one quiz question.
type QuestionInput struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required,min=2"`
	Answer   string   `json:"answer" binding:"required"`
	Order    int      `json:"order"`
}

func (s *ContentService) AddQuestion(lessonID uint, input QuestionInput) (*model.QuizQuestion, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		return nil, util.ErrLessonNotFound
	}

	valid := false
	for _, option := range input.Options {
		if option == input.Answer {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("answer %q is not among the options", input.Answer)
	}

	options, _ := json.Marshal(input.Options)
	question := &model.QuizQuestion{
		LessonID: lessonID,
		Question: input.Question,
		Options:  options,
		Answer:   input.Answer,
		Order:    input.Order,
	}

	if err := s.LessonRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *ContentService) RemoveQuestion(questionID uint) error {
	return s.LessonRepo.DeleteQuestion(questionID)
}

// UploadLessonVideo stores the uploaded video, probes it for a duration label
// and attaches both to the lesson.
func (s *ContentService) UploadLessonVideo(ctx context.Context, lessonID uint, header *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("unsupported video format %q", ext)
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// Spool to a temp file so ffprobe can inspect it before upload.
	tmp, err := os.CreateTemp("", "lesson-video-*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	info, err := util.GetVideoInfo(tmpPath)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("lessons/%d/%s%s", lessonID, uuid.New().String(), ext)
	url, err := s.Storage.UploadFile(ctx, objectName, tmpPath, util.MimeVideo+strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = url
	if label := util.DurationLabel(info.Duration); label != "" {
		lesson.Duration = label
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// ChallengeInput carries the teacher-editable challenge fields.
type ChallengeInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Points      int    `json:"points" binding:"required,min=1"`
	Duration    string `json:"duration"`
	Status      string `json:"status" binding:"omitempty,oneof=active upcoming completed"`
	Progress    int    `json:"progress" binding:"min=0,max=100"`
	Image       string `json:"image"`
}

func (s *ContentService) CreateChallenge(teacherID uint, input ChallengeInput) (*model.Challenge, error) {
	difficulty := model.ChallengeDifficulty(input.Difficulty)
	if difficulty == "" {
		difficulty = model.ChallengeMedium
	}
	status := model.ChallengeStatus(input.Status)
	if status == "" {
		status = model.ChallengeUpcoming
	}

	challenge := &model.Challenge{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Difficulty:  difficulty,
		Points:      input.Points,
		Duration:    input.Duration,
		Status:      status,
		Progress:    input.Progress,
		Image:       input.Image,
		CreatedBy:   teacherID,
	}

	if err := s.ChallengeRepo.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ContentService) UpdateChallenge(challengeID uint, input ChallengeInput) (*model.Challenge, error) {
	challenge, err := s.ChallengeRepo.FindByID(challengeID)
	if err != nil {
		return nil, util.ErrChallengeNotFound
	}

	challenge.Title = input.Title
	challenge.Description = input.Description
	challenge.Category = input.Category
	if input.Difficulty != "" {
		challenge.Difficulty = model.ChallengeDifficulty(input.Difficulty)
	}
	challenge.Points = input.Points
	if input.Duration != "" {
		challenge.Duration = input.Duration
	}
	if input.Status != "" {
		challenge.Status = model.ChallengeStatus(input.Status)
	}
	challenge.Progress = input.Progress
	if input.Image != "" {
		challenge.Image = input.Image
	}

	if err := s.ChallengeRepo.Update(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ContentService) DeleteChallenge(challengeID uint) error {
	if _, err := s.ChallengeRepo.FindByID(challengeID); err != nil {
		return util.ErrChallengeNotFound
	}
	return s.ChallengeRepo.Delete(challengeID)
}
