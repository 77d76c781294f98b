package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/models"
)

const (
	sessionNameCookie   = "name"
	sessionSecretCookie = "secret"
	currentUserLocal    = "currentUser"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// currentUser returns the session user loaded by SessionMiddleware, or nil.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserLocal).(*models.User)
	return user
}

// parseID extracts a route parameter as a positive integer.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps a service-layer error onto the HTTP surface.
// Unauthenticated callers are redirected to the login page and forbidden ones
// silently back home; everything else becomes a JSON error response.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeUnauthenticated:
			return c.Redirect("/login", fiber.StatusFound)
		case models.CodeForbidden:
			return c.Redirect("/", fiber.StatusFound)
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case models.CodeAlreadyExists, models.CodeConflict:
			return models.RespondWithError(c, fiber.StatusConflict, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
