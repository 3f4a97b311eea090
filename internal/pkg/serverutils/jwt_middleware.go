package serverutils

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const UserIdLocalKey = "user_id"

// NewJwtMiddleware verifies HS256 tokens issued by the identity provider.
// The subject is read from "sub", falling back to "user_id".
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return unauthorized(ctx)
		}
		tokenStr := strings.TrimSpace(authHeader[7:])

		if secret == "" {
			return unauthorized(ctx)
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return unauthorized(ctx)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(ctx)
		}

		subject := subjectFromClaims(claims)
		if _, err := uuid.Parse(subject); err != nil {
			return unauthorized(ctx)
		}

		ctx.Locals(UserIdLocalKey, subject)
		return ctx.Next()
	}
}

// CurrentUserID returns the verified caller, or uuid.Nil when the request
// never went through the middleware.
func CurrentUserID(ctx *fiber.Ctx) uuid.UUID {
	raw, ok := ctx.Locals(UserIdLocalKey).(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func subjectFromClaims(claims jwt.MapClaims) string {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	if userId, ok := claims["user_id"].(string); ok {
		return userId
	}
	return ""
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
