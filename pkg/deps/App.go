package deps

import (
	"github.com/Alwanly/sensu-relay/internal/config"
	"github.com/Alwanly/sensu-relay/pkg/logger"
	"github.com/Alwanly/sensu-relay/pkg/middleware"
	"github.com/Alwanly/sensu-relay/pkg/pubsub"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// App carries the shared dependencies handed to each server module.
// Database and Pub are nil when the journal or the redis backend is not configured.
type App struct {
	Config     *config.RelayConfig
	Fiber      *fiber.App
	Logger     *logger.CanonicalLogger
	Database   *gorm.DB
	Middleware *middleware.AuthMiddleware
	Pub        pubsub.Publisher
}
