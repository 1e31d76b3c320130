package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
	"github.com/rs/zerolog"
)

// LocalActor key en c.Locals con el entity.Actor autenticado.
const LocalActor = "actor"

// ActorResolver confirma que el usuario del token sigue activo.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID int64) (entity.Actor, error)
}

// AuthMiddleware valida el Bearer Token JWT, resuelve el usuario y lo deja en c.Locals.
func AuthMiddleware(jwtSecret string, resolver ActorResolver, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		actor, err := resolver.ResolveActor(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario inexistente o inactivo"})
			}
			return writeError(c, log, err)
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetActor devuelve el actor autenticado (después del middleware de auth).
func GetActor(c *fiber.Ctx) (entity.Actor, bool) {
	actor, ok := c.Locals(LocalActor).(entity.Actor)
	return actor, ok && actor.ID > 0
}
