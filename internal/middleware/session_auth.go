package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/service"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	SessionIDKey        = "sessionID" // Key for storing the session ID in fiber.Ctx locals
)

// SessionAuth requires a bearer session token whose session ID matches the :id path parameter.
func SessionAuth(sessions service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewError(domain.CodeUnauthorized, "Authorization header is missing", nil)
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewError(domain.CodeUnauthorized, "Authorization scheme is not Bearer", nil)
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return domain.NewError(domain.CodeUnauthorized, "Token is empty", nil)
		}

		claims, err := sessions.ValidateToken(c.UserContext(), tokenString)
		if err != nil {
			return domain.NewError(domain.CodeUnauthorized, "Invalid or expired session token", err)
		}
		if id := c.Params("id"); id != "" && id != claims.SessionID {
			return domain.NewError(domain.CodeUnauthorized, "Token does not belong to this session", nil)
		}

		c.Locals(SessionIDKey, claims.SessionID)
		return c.Next()
	}
}

// SessionIDFromContext returns the session ID stored by SessionAuth.
func SessionIDFromContext(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionIDKey).(string)
	return id
}
