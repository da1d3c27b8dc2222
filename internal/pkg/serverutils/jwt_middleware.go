// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"errors"
	"fmt"

	"jobboard-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrEmptySecret is returned when signing with an empty HMAC key.
var ErrEmptySecret = errors.New("jwt secret is empty")

// JwtMiddleware verifies HS256 bearer tokens. With an empty secret every
// request is refused.
func JwtMiddleware(secret string) fiber.Handler {
	if secret == "" {
		return func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Authentication is not configured"))
		}
	}
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
		}

		userId, _ := claims["user_id"].(string)
		if _, err := uuid.Parse(userId); err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
		}
		role, _ := claims["role"].(string)
		if role == "" {
			role = string(entity.UserRoleUser)
		}

		ctx.Locals("user_id", userId)
		ctx.Locals("role", role)
		return ctx.Next()
	}
}

// CurrentActor reads the caller set by JwtMiddleware.
func CurrentActor(ctx *fiber.Ctx) (entity.Actor, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return entity.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "unauthenticated")
	}
	role, _ := ctx.Locals("role").(string)
	return entity.Actor{UserId: userId, Role: entity.UserRole(role)}, nil
}

// SignToken issues an HS256 token with the claims JwtMiddleware expects.
// Used by the seed command and tests.
func SignToken(secret string, userId uuid.UUID, role entity.UserRole) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"role":    string(role),
	})
	return token.SignedString([]byte(secret))
}
