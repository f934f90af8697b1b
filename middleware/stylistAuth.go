package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	stylistRepo "quikka/database/repository/stylist"
	"quikka/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	authCachePrefix = "auth:stylist:"
	authCacheTTL    = 30 * time.Minute
)

// JWTAuthStylistMiddleware validates the stylist JWT with Redis caching of
// known-good token hashes.
func JWTAuthStylistMiddleware(repo stylistRepo.StylistRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		stylistID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || stylistID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := authCachePrefix + computedHash

		// Check the authorization cache first; refresh TTL on hit.
		authCache := utils.GetAuthCacheClient()
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cached == "1" {
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("stylistID", stylistID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		stylist, err := repo.GetByID(ctx, stylistID)
		if err != nil || stylist == nil {
			logger.Error("Stylist not found when validating token", zap.String("stylistID", stylistID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Stylist not found"})
			return
		}

		if computedHash != stylist.TokenHash {
			logger.Error("Token hash mismatch", zap.String("stylistID", stylistID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		if err := authCache.Set(ctx, cacheKey, "1", authCacheTTL).Err(); err != nil {
			logger.Error("Failed to set auth cache", zap.Error(err))
		}

		c.Set("stylistID", stylistID)
		c.Next()
	}
}
