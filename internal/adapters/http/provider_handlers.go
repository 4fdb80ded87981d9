package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/avinashdhn/mechmap/internal/core/domain"
)

// UpsertProviderHandler creates or replaces the caller's provider
// profile.
func UpsertProviderHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p domain.Provider
		if err := c.BodyParser(&p); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		out, err := deps.Providers.Upsert(c.Context(), callerID(c), &p)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(out)
	}
}

// NearbyProvidersHandler returns providers within a radius of a point,
// sorted by distance, each with its active services attached.
func NearbyProvidersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		latStr := c.Query("lat")
		lngStr := c.Query("lng")
		if latStr == "" || lngStr == "" {
			return errBadRequest(c, "lat and lng are required")
		}

		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return errBadRequest(c, "lat must be a number")
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return errBadRequest(c, "lng must be a number")
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return errBadRequest(c, "lat/lng out of range")
		}

		radius := c.QueryFloat("radius", 0)
		serviceType := c.Query("serviceType")

		providers, err := deps.Nearby.FindNearby(c.Context(), lat, lng, serviceType, radius)
		if err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(providers)
	}
}

// MyProfileHandler returns the caller's provider profile.
func MyProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Providers.MyProfile(c.Context(), callerID(c))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "provider profile not found")
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(p)
	}
}

// ProvidersByServiceHandler lists approved providers for an exact
// service type.
func ProvidersByServiceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		serviceType := c.Params("id")
		if serviceType == "" {
			return errBadRequest(c, "service type is required")
		}

		providers, err := deps.Providers.ByServiceType(c.Context(), serviceType)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(providers)
	}
}

// ListProvidersHandler returns every provider profile. Admin only.
func ListProvidersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		providers, err := deps.Providers.List(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(providers)
		if offset >= total {
			providers = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			providers = providers[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: providers, Pagination: pg})
	}
}

// ProviderStatusHandler records an approve/reject decision. Admin only.
func ProviderStatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "provider id is required")
		}

		var in struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		if err := deps.Moderation.Decide(c.Context(), id, in.Status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "provider not found")
			}
			if errors.Is(err, domain.ErrValidation) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"id": id, "status": in.Status})
	}
}
