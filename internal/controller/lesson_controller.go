package controller

import (
	"ecolearn_backend/internal/service"
	"ecolearn_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LessonController struct {
	Catalog     *service.CatalogService
	Quiz        *service.QuizService
	Progression *service.ProgressionService
}

func NewLessonController(catalog *service.CatalogService, quiz *service.QuizService, progression *service.ProgressionService) *LessonController {
	return &LessonController{
		Catalog:     catalog,
		Quiz:        quiz,
		Progression: progression,
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// ListLessons godoc
// @Summary Lesson catalog with the caller's completion flags
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.LessonView} "success"
// @Router /api/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessons, err := c.Catalog.ListLessons(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary Lesson detail with its quiz questions
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response{data=service.LessonDetail} "success"
// @Failure 404 {object} util.Response "lesson not found"
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	lesson, err := c.Catalog.GetLesson(claims.UserID, lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// SubmitQuiz godoc
// @Summary Submit a lesson quiz attempt
// @Description Grades the attempt; a passing score completes the lesson and awards its points once
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Param   body body service.QuizSubmission true "answers keyed by question id"
// @Success 200 {object} util.Response{data=service.QuizOutcome} "graded"
// @Failure 404 {object} util.Response "lesson not found"
// @Router /api/lessons/{id}/quiz [post]
func (c *LessonController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var submission service.QuizSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.Quiz.SubmitQuiz(claims.UserID, lessonID, submission)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, outcome)
}

// CompleteLesson godoc
// @Summary Complete a lesson without a quiz
// @Description For video-only lessons; quiz-bearing lessons complete through the quiz gate
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response{data=service.CompletionResult} "outcome"
// @Failure 404 {object} util.Response "lesson not found"
// @Router /api/lessons/{id}/complete [post]
func (c *LessonController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.Progression.CompleteLesson(claims.UserID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	switch result.Outcome {
	case service.OutcomeNotFound:
		util.NotFound(ctx)
	case service.OutcomeAlreadyDone:
		util.SuccessMessage(ctx, "lesson already completed", result)
	default:
		util.Success(ctx, result)
	}
}
