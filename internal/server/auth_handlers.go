package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/identity"
	"inkwell/internal/models"
)

// setSessionCookies writes the cookie pair that is the session. The values
// carry no expiry of their own; they stay valid as long as the stored
// credential hash does.
func setSessionCookies(c *fiber.Ctx, token identity.Token) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionNameCookie,
		Value:    token.Name,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     sessionSecretCookie,
		Value:    token.Secret,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: sessionNameCookie, Value: "", Path: "/", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: sessionSecretCookie, Value: "", Path: "/", Expires: expired, HTTPOnly: true})
}

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	if s.currentUser(c) != nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	var req struct {
		User     string `json:"user"`
		Password string `json:"password"`
		Verify   string `json:"verify"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.identity.Register(c.Context(), identity.RegisterInput{
		Username: req.User,
		Password: req.Password,
		Verify:   req.Verify,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	setSessionCookies(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    newAuthorView(*user),
	})
}

// Login handles POST /api/auth/login. A failed attempt reports whether the
// username or the password was wrong, preserving the original form behavior
// (a deliberate information leak).
func (s *Server) Login(c *fiber.Ctx) error {
	if s.currentUser(c) != nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	var req struct {
		User     string `json:"user"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.identity.Authenticate(c.Context(), req.User, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrUnknownUser):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"baduser": true,
			})
		case errors.Is(err, identity.ErrWrongPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"badpwd":  true,
			})
		}
		return respondServiceError(c, err)
	}

	setSessionCookies(c, token)
	return c.JSON(fiber.Map{
		"success": true,
		"user":    newAuthorView(*user),
	})
}

// Logout handles GET /api/auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	clearSessionCookies(c)
	return c.Redirect("/", fiber.StatusFound)
}
