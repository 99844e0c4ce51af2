package service

import (
	"ecolearn_backend/internal/config"
	"ecolearn_backend/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const leaderboardCacheTTL = time.Minute

// LeaderboardEntry is one row of the rankings.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	User   string `json:"user"`
	School string `json:"school"`
	Points int    `json:"points"`
	Level  int    `json:"level"`
	Avatar string `json:"avatar,omitempty"`
}

// LeaderboardService ranks students by points. The top list is cached in
// Redis for a minute; rankings tolerate slightly stale reads.
type LeaderboardService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Cfg      *config.Config
}

func NewLeaderboardService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *LeaderboardService {
	return &LeaderboardService{
		UserRepo: userRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

func (s *LeaderboardService) cacheKey(limit int) string {
	return fmt.Sprintf("leaderboard:top:%d", limit)
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, s.cacheKey(limit)).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByPoints(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:   i + 1,
			User:   user.Name,
			School: user.School,
			Points: user.Points,
			Level:  LevelForPoints(user.Points, s.Cfg.Progress.PointsPerLevel),
			Avatar: user.Avatar,
		}
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, s.cacheKey(limit), payload, leaderboardCacheTTL)
		}
	}

	return entries, nil
}

// GetUserRank returns the caller's 1-based rank among students.
func (s *LeaderboardService) GetUserRank(userID uint) (int, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return 0, err
	}

	above, err := s.UserRepo.CountRankedAbove(user.Points)
	if err != nil {
		return 0, err
	}

	return int(above) + 1, nil
}

// Invalidate drops cached rankings, e.g. after a bulk award.
func (s *LeaderboardService) Invalidate(ctx context.Context, limits ...int) {
	if s.Redis == nil {
		return
	}
	for _, limit := range limits {
		s.Redis.Del(ctx, s.cacheKey(limit))
	}
}
