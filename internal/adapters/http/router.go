package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/avinashdhn/mechmap/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness: fast internal checks, no timeout wrapper
	app.Get("/api/health", HealthHandler(deps))
	app.Get("/api/ready", ReadyHandler(deps))

	auth := AuthRequired(deps)
	admin := RequireRole("admin")

	// REST API with a 15s per-request timeout
	api := app.Group("/api")

	api.Post("/auth/register", timeout.NewWithContext(RegisterHandler(deps), 15*time.Second))
	api.Post("/auth/login", timeout.NewWithContext(LoginHandler(deps), 15*time.Second))

	api.Get("/providers/nearby", timeout.NewWithContext(NearbyProvidersHandler(deps), 15*time.Second))
	api.Get("/providers/by-service/:id", timeout.NewWithContext(ProvidersByServiceHandler(deps), 15*time.Second))
	api.Get("/providers/my-profile", auth, timeout.NewWithContext(MyProfileHandler(deps), 15*time.Second))
	api.Post("/providers", auth, timeout.NewWithContext(UpsertProviderHandler(deps), 15*time.Second))
	api.Get("/providers", auth, admin, timeout.NewWithContext(ListProvidersHandler(deps), 15*time.Second))
	api.Patch("/providers/:id/status", auth, admin, timeout.NewWithContext(ProviderStatusHandler(deps), 15*time.Second))

	api.Get("/services", timeout.NewWithContext(ListServicesHandler(deps), 15*time.Second))
	api.Get("/services/my-services", auth, timeout.NewWithContext(MyServicesHandler(deps), 15*time.Second))
	api.Post("/services", auth, timeout.NewWithContext(CreateServiceHandler(deps), 15*time.Second))
	api.Put("/services/:id", auth, timeout.NewWithContext(UpdateServiceHandler(deps), 15*time.Second))
	api.Delete("/services/:id", auth, timeout.NewWithContext(DeleteServiceHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket. Refuse the upgrade outright when NATS is down so the
	// hijacked handler never runs without a broker connection.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if deps.NATS == nil {
			return newError(c, fiber.StatusServiceUnavailable, "service_unavailable", "event stream unavailable")
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
