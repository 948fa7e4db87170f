package middleware

import (
	"context"
	"strings"

	"reefclean/internal/models"
	"reefclean/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

// AuthContextKey is used to store auth info in context
type AuthContextKey string

const (
	UserKey      AuthContextKey = "user"
	UserKeyFiber string         = "User"
)

// Identify resolves the bearer token into a user and stores it on the
// request. Requests without an Authorization header pass through anonymous;
// controllers decide whether that is enough. A header that is present but
// invalid is rejected with 401.
func (m *Middleware) Identify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("Identify")

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" || tokenParts[1] == "" {
			log.Info("invalid authorization header format")
			return unauthenticated(c, "Invalid authorization header format")
		}

		userID, err := m.tokenService.Validate(tokenParts[1])
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return unauthenticated(c, "Invalid token")
		}

		user, err := m.userRepo.GetByID(c.UserContext(), userID)
		if err != nil {
			log.Info("user not found in database", "userID", userID, "error", err.Error())
			return unauthenticated(c, "User not found")
		}

		c.Locals(UserKeyFiber, user)

		ctx := context.WithValue(c.UserContext(), UserKey, user)
		c.SetUserContext(ctx)

		log.Debug("user identified", "userID", user.ID, "role", user.Role)
		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"kind":  types.KindUnauthenticated,
	})
}

// GetUser extracts user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}
