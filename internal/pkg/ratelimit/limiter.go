package ratelimit

import (
	"time"

	"emoticore-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/google/uuid"
)

// NewChatLimiter caps requests per authenticated user per minute. It must run
// after the JWT middleware. A nil storage keeps counters in process memory.
func NewChatLimiter(maxPerMinute int, storage fiber.Storage) fiber.Handler {
	if maxPerMinute <= 0 {
		maxPerMinute = 30
	}

	cfg := limiter.Config{
		Max:        maxPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			if id := serverutils.CurrentUserID(ctx); id != uuid.Nil {
				return "chat:" + id.String()
			}
			return "chat:ip:" + ctx.IP()
		},
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
		},
	}
	if storage != nil {
		cfg.Storage = storage
	}
	return limiter.New(cfg)
}
