package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/auth"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/application/dto"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/access"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/internal/domain/entity"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/jwt"
	"github.com/lequanos/projet-09-gestion-de-magasin-back-sub000/pkg/logger"
)

// localCaller clave de Locals donde se guarda el access.Caller del token.
const localCaller = "caller"

// AuthMiddleware valida el Bearer Token y deja el Caller en c.Locals. Cualquier fallo es 401, sin reintento.
func AuthMiddleware(signer *jwt.Signer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
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
		claims, err := signer.ParseAccess(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		caller, err := auth.CallerFromClaims(claims)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: err.Error()})
		}
		c.Locals(localCaller, caller)
		return c.Next()
	}
}

// GetCaller devuelve el Caller del contexto (después de AuthMiddleware).
func GetCaller(c *fiber.Ctx) (access.Caller, bool) {
	caller, ok := c.Locals(localCaller).(access.Caller)
	return caller, ok
}

// RequirePermission exige que el rol del token tenga al menos uno de los permisos (semántica OR).
// Debe usarse DESPUÉS de AuthMiddleware.
func RequirePermission(required ...entity.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := GetCaller(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "usuario no autenticado"})
		}
		if !caller.Can(required...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permisos insuficientes"})
		}
		return c.Next()
	}
}

// RequestLogger registra método, ruta, estado, latencia y usuario de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		if caller, ok := GetCaller(c); ok {
			ev = ev.Int64("user_id", caller.UserID)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
