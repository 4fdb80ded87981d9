package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/avinashdhn/mechmap/internal/core/domain"
)

// ListServicesHandler returns all service records.
func ListServicesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		services, err := deps.Services.List(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(services)
	}
}

// MyServicesHandler returns the services owned by the caller.
func MyServicesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		services, err := deps.Services.ListByOwner(c.Context(), callerID(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(services)
	}
}

// CreateServiceHandler adds a new offering owned by the caller.
func CreateServiceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var svc domain.Service
		if err := c.BodyParser(&svc); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		out, err := deps.Services.Create(c.Context(), callerID(c), &svc)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		return c.Status(201).JSON(out)
	}
}

// UpdateServiceHandler overwrites fields of an offering the caller
// owns. A missing or non-owned id reports 404 without distinguishing
// the two.
func UpdateServiceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "service id is required")
		}

		var svc domain.Service
		if err := c.BodyParser(&svc); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		svc.ID = id

		out, err := deps.Services.Update(c.Context(), callerID(c), &svc)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "service not found")
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(out)
	}
}

// DeleteServiceHandler removes an offering the caller owns.
func DeleteServiceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "service id is required")
		}

		if err := deps.Services.Delete(c.Context(), callerID(c), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "service not found")
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"deleted": id})
	}
}
