package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/avinashdhn/mechmap/internal/core/domain"
	"github.com/avinashdhn/mechmap/internal/core/usecases"
)

// RegisterHandler creates a user account and returns a token.
func RegisterHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in usecases.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		tok, user, err := deps.Auth.Register(c.Context(), in)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return errBadRequest(c, "email already registered")
			}
			if errors.Is(err, domain.ErrValidation) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}

		return c.Status(201).JSON(fiber.Map{
			"token": tok,
			"user":  user,
		})
	}
}

// LoginHandler verifies credentials and returns a token.
func LoginHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if in.Email == "" || in.Password == "" {
			return errBadRequest(c, "email and password are required")
		}

		tok, user, err := deps.Auth.Login(c.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				return errBadRequest(c, "invalid credentials")
			}
			return errInternal(c, err.Error())
		}

		return c.JSON(fiber.Map{
			"token": tok,
			"user":  user,
		})
	}
}
