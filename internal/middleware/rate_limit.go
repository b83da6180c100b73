package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"glowmart_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	APIMaxRequests = 100 // per minute per IP
	APICooldown    = 1 * time.Minute

	PaymentMaxRequests = 10 // per minute per user, gateways are slow and costly
	PaymentCooldown    = 1 * time.Minute

	CartMaxRequests = 20 // cart mutations per minute per user
)

// APIRateLimit caps requests per IP on the general endpoints.
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_requests:" + c.ClientIP()

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "Too many requests. Try again in a minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, APICooldown)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", APIMaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", APIMaxRequests-requests-1))

		c.Next()
	}
}

// PaymentRateLimit caps payment initiations per user.
func PaymentRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "payment_init:" + userID

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= PaymentMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "Too many payment attempts. Try again in a minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, PaymentCooldown)
		pipe.Exec(ctx)

		c.Next()
	}
}

// CartRateLimit caps cart mutations per user (anti-spam).
func CartRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "cart_write:" + userID

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= CartMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "Too many cart updates. Slow down a little",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 1*time.Minute)
		pipe.Exec(ctx)

		c.Next()
	}
}
