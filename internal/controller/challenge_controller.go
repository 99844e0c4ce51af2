package controller

import (
	"ecolearn_backend/internal/service"
	"ecolearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChallengeController struct {
	Catalog     *service.CatalogService
	Progression *service.ProgressionService
}

func NewChallengeController(catalog *service.CatalogService, progression *service.ProgressionService) *ChallengeController {
	return &ChallengeController{
		Catalog:     catalog,
		Progression: progression,
	}
}

// ListChallenges godoc
// @Summary Challenge catalog with the caller's joined flags
// @Tags challenges
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.ChallengeView} "success"
// @Router /api/challenges [get]
func (c *ChallengeController) ListChallenges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	challenges, err := c.Catalog.ListChallenges(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, challenges)
}

// GetChallenge godoc
// @Summary Challenge detail
// @Tags challenges
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "challenge id"
// @Success 200 {object} util.Response{data=service.ChallengeView} "success"
// @Failure 404 {object} util.Response "challenge not found"
// @Router /api/challenges/{id} [get]
func (c *ChallengeController) GetChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	challenge, err := c.Catalog.GetChallenge(claims.UserID, challengeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, challenge)
}

// JoinChallenge godoc
// @Summary Join a challenge
// @Description Counts the caller once; repeat joins leave the participant count alone
// @Tags challenges
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "challenge id"
// @Success 200 {object} util.Response{data=service.JoinResult} "outcome"
// @Failure 404 {object} util.Response "challenge not found"
// @Router /api/challenges/{id}/join [post]
func (c *ChallengeController) JoinChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.Progression.JoinChallenge(claims.UserID, challengeID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	switch result.Outcome {
	case service.OutcomeNotFound:
		util.NotFound(ctx)
	case service.OutcomeAlreadyDone:
		util.SuccessMessage(ctx, "challenge already joined", result)
	default:
		util.Success(ctx, result)
	}
}
