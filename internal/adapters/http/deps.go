package http

import (
	"github.com/nats-io/nats.go"

	"github.com/avinashdhn/mechmap/internal/adapters/postgres"
	"github.com/avinashdhn/mechmap/internal/adapters/valkey"
	"github.com/avinashdhn/mechmap/internal/core/usecases"
	"github.com/avinashdhn/mechmap/internal/pkg/token"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Auth       *usecases.AuthService
	Providers  *usecases.ProviderService
	Nearby     *usecases.NearbyService
	Services   *usecases.ServiceService
	Moderation *usecases.ModerationService
	Tokens     *token.Manager
	NATS       *nats.Conn
	DB         *postgres.DB
	Cache      *valkey.Cache
}
