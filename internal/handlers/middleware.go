package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirestack/recruit-api/internal/apperr"
)

const userIDLocal = "userID"

// SessionMiddleware resolves the calling recruiter from the X-User-ID
// header. The gateway in front of this service authenticates the session
// and injects the header; routes that tolerate anonymous callers (the
// invitation redemption path) are simply not mounted behind this.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-User-ID")
		if raw == "" {
			return apperr.Wrap(apperr.ErrUnauthorized, "missing X-User-ID header")
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			return apperr.Wrap(apperr.ErrUnauthorized, "malformed X-User-ID header")
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

func sessionUserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(userIDLocal).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.ErrInvalidArgument, "invalid %s", name)
	}
	return id, nil
}
