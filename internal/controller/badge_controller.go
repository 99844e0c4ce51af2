package controller

import (
	"ecolearn_backend/internal/service"
	"ecolearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BadgeController struct {
	Catalog     *service.CatalogService
	Progression *service.ProgressionService
}

func NewBadgeController(catalog *service.CatalogService, progression *service.ProgressionService) *BadgeController {
	return &BadgeController{
		Catalog:     catalog,
		Progression: progression,
	}
}

// ListBadges godoc
// @Summary Badge catalog with the caller's earned markers
// @Tags badges
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.BadgeView} "success"
// @Router /api/badges [get]
func (c *BadgeController) ListBadges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	badges, err := c.Catalog.ListBadges(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, badges)
}

// ListEarnedBadges godoc
// @Summary Badges the caller has earned, oldest first
// @Tags badges
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.EarnedBadge} "success"
// @Router /api/badges/earned [get]
func (c *BadgeController) ListEarnedBadges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	earned, err := c.Progression.BadgeRepo.FindEarnedByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, earned)
}
