package middleware

import (
	"context"
	"time"

	"cosmosync/internal/repository"

	"github.com/gin-gonic/gin"
)

// CounterKey - общий поминутный счетчик запросов в Redis.
const CounterKey = "rl:global"

// RequestCounter инкрементирует счетчик fire-and-forget: запрос никогда
// не ждет Redis и не падает из-за него. Потери под нагрузкой допустимы -
// счетчик рекомендательный, не rate limiter.
func RequestCounter(cache repository.CacheRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			if n, err := cache.Increment(ctx, CounterKey); err == nil && n == 1 {
				_ = cache.Expire(ctx, CounterKey, time.Minute)
			}
		}()

		c.Next()
	}
}
