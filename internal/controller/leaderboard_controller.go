package controller

import (
	"ecolearn_backend/internal/service"
	"ecolearn_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	Leaderboard *service.LeaderboardService
}

func NewLeaderboardController(leaderboard *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{Leaderboard: leaderboard}
}

// GetLeaderboard godoc
// @Summary Top students by points, plus the caller's own rank
// @Tags leaderboard
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "number of entries (default 10)"
// @Success 200 {object} util.Response{data=object} "success"
// @Router /api/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := c.Leaderboard.GetLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	rank, err := c.Leaderboard.GetUserRank(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"entries": entries,
		"myRank":  rank,
	})
}
