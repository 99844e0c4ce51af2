package middleware

import (
	"ecolearn_backend/internal/config"
	"ecolearn_backend/internal/model"
	"ecolearn_backend/internal/util"
	"ecolearn_backend/pkg/logger"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}

	return c.Query("token")
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware attaches claims when a valid token is present but lets
// anonymous requests through.
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			// Admins hold every role.
			if user.Role == model.Admin {
				hasRole = true
				break
			}
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

// activitySeenWindow is how long a user's last-seen stamp is considered fresh;
// repeat requests inside the window are not written again.
const activitySeenWindow = time.Minute

type activityTracker struct {
	repo  UserActivityRepo
	queue chan uint
}

func (t *activityTracker) run() {
	seen := make(map[uint]time.Time)
	for userID := range t.queue {
		if last, ok := seen[userID]; ok && time.Since(last) < activitySeenWindow {
			continue
		}
		seen[userID] = time.Now()
		if err := t.repo.UpdateLastSeen(userID); err != nil {
			logger.Log.Warn("last-seen update failed",
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		}
	}
}

// ActivityMiddleware stamps last-seen off the request path through a single
// worker, debounced per user. Under a burst the queue drops rather than
// piling up goroutines or DB writes.
func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	tracker := &activityTracker{
		repo:  repo,
		queue: make(chan uint, 256),
	}
	go tracker.run()

	return func(c *gin.Context) {
		if claims := util.GetUserFromContext(c); claims != nil {
			select {
			case tracker.queue <- claims.UserID:
			default:
			}
		}
		c.Next()
	}
}
