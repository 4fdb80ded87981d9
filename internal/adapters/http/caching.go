package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on
// endpoint. Adds defaults only where the handler has not set one.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}

		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/api/health" || path == "/api/ready":
			ttl = "public, max-age=10"

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/graphql":
			ttl = "private, max-age=0"

		case strings.HasPrefix(path, "/api/providers/nearby"):
			ttl = "public, max-age=60" // Location queries move with the data

		case strings.HasPrefix(path, "/api/providers/by-service/"):
			ttl = "public, max-age=300"

		case path == "/api/providers/my-profile" || path == "/api/services/my-services":
			ttl = "private, max-age=0" // Per-caller data never shared

		case path == "/api/services":
			ttl = "public, max-age=300"

		case strings.HasPrefix(path, "/api/"):
			ttl = "private, max-age=0"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
