package controller

import (
	"ecolearn_backend/internal/service"
	"ecolearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentController is the teacher-facing catalog surface.
type ContentController struct {
	Content *service.ContentService
}

func NewContentController(content *service.ContentService) *ContentController {
	return &ContentController{Content: content}
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags content
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.LessonInput true "lesson fields"
// @Success 201 {object} util.Response{data=model.Lesson} "created"
// @Failure 400 {object} util.Response "invalid payload"
// @Router /api/teacher/lessons [post]
func (c *ContentController) CreateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.Content.CreateLesson(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags content
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Param   body body service.LessonInput true "lesson fields"
// @Success 200 {object} util.Response{data=model.Lesson} "success"
// @Failure 404 {object} util.Response "lesson not found"
// @Router /api/teacher/lessons/{id} [put]
func (c *ContentController) UpdateLesson(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.LessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.Content.UpdateLesson(lessonID, req)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags content
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response "success"
// @Failure 404 {object} util.Response "lesson not found"
// @Router /api/teacher/lessons/{id} [delete]
func (c *ContentController) DeleteLesson(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Content.DeleteLesson(lessonID); err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.SuccessMessage(ctx, "lesson deleted", nil)
}

// AddQuestion godoc
// @Summary Add a quiz question to a lesson
// @Tags content
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Param   body body service.QuestionInput true "question fields"
// @Success 201 {object} util.Response{data=model.QuizQuestion} "created"
// @Failure 400 {object} util.Response "invalid payload"
// @Failure 404 {object} util.Response "lesson not found"
// @Router /api/teacher/lessons/{id}/questions [post]
func (c *ContentController) AddQuestion(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Content.AddQuestion(lessonID, req)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, question)
}

// RemoveQuestion godoc
// @Summary Remove a quiz question
// @Tags content
// @Produce  json
// @Security ApiKeyAuth
// @Param   questionId path int true "question id"
// @Success 200 {object} util.Response "success"
// @Router /api/teacher/questions/{questionId} [delete]
func (c *ContentController) RemoveQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.Content.RemoveQuestion(questionID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.SuccessMessage(ctx, "question removed", nil)
}

// UploadLessonVideo godoc
// @Summary Upload a lesson video
// @Description Stores the video and refreshes the lesson's duration label from the probed length
// @Tags content
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Param   video formData file true "video file"
// @Success 200 {object} util.Response{data=model.Lesson} "success"
// @Failure 400 {object} util.Response "invalid file"
// @Failure 404 {object} util.Response "lesson not found"
// @Router /api/teacher/lessons/{id}/video [post]
func (c *ContentController) UploadLessonVideo(ctx *gin.Context) {
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	header, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	lesson, err := c.Content.UploadLessonVideo(ctx.Request.Context(), lessonID, header)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, lesson)
}

// CreateChallenge godoc
// @Summary Create a challenge
// @Tags content
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ChallengeInput true "challenge fields"
// @Success 201 {object} util.Response{data=model.Challenge} "created"
// @Failure 400 {object} util.Response "invalid payload"
// @Router /api/teacher/challenges [post]
func (c *ContentController) CreateChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ChallengeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.Content.CreateChallenge(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, challenge)
}

// UpdateChallenge godoc
// @Summary Update a challenge
// @Tags content
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "challenge id"
// @Param   body body service.ChallengeInput true "challenge fields"
// @Success 200 {object} util.Response{data=model.Challenge} "success"
// @Failure 404 {object} util.Response "challenge not found"
// @Router /api/teacher/challenges/{id} [put]
func (c *ContentController) UpdateChallenge(ctx *gin.Context) {
	challengeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ChallengeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.Content.UpdateChallenge(challengeID, req)
	if err != nil {
		if errors.Is(err, util.ErrChallengeNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, challenge)
}

// DeleteChallenge godoc
// @Summary Delete a challenge
// @Tags content
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "challenge id"
// @Success 200 {object} util.Response "success"
// @Failure 404 {object} util.Response "challenge not found"
// @Router /api/teacher/challenges/{id} [delete]
func (c *ContentController) DeleteChallenge(ctx *gin.Context) {
	challengeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Content.DeleteChallenge(challengeID); err != nil {
		if errors.Is(err, util.ErrChallengeNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.SuccessMessage(ctx, "challenge deleted", nil)
}
