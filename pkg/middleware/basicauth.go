package middleware

import (
	"net/http"
	"strings"

	authentication "github.com/Alwanly/sensu-relay/pkg/auth"
	"github.com/gofiber/fiber/v2"
)

type IAuthMiddleware interface {
	// Operator endpoints: commands and the delivery journal
	OperatorAuth() fiber.Handler

	// Monitoring webhook, open when no credentials are configured
	WebhookAuth() fiber.Handler
}

type AuthMiddleware struct {
	Operator authentication.IBasicAuthService
	Webhook  authentication.IBasicAuthService
}

// mockery:ignore
type AuthConfig func(*AuthOpts)

type AuthOpts struct {
	Operator *authentication.BasicAuthTConfig
	Webhook  *authentication.BasicAuthTConfig
}

func SetOperatorAuth(cfg *authentication.BasicAuthTConfig) AuthConfig {
	return func(o *AuthOpts) {
		o.Operator = cfg
	}
}

func SetWebhookAuth(cfg *authentication.BasicAuthTConfig) AuthConfig {
	return func(o *AuthOpts) {
		o.Webhook = cfg
	}
}

func NewAuthMiddleware(opts ...AuthConfig) *AuthMiddleware {
	var o AuthOpts
	for _, opt := range opts {
		opt(&o)
	}

	return &AuthMiddleware{
		Operator: authentication.NewBasicAuthService(o.Operator),
		Webhook:  authentication.NewBasicAuthService(o.Webhook),
	}
}

// OperatorAuth rejects every request when no operator credentials are configured.
func (a *AuthMiddleware) OperatorAuth() fiber.Handler {
	return basicAuth(a.Operator, false)
}

func (a *AuthMiddleware) WebhookAuth() fiber.Handler {
	return basicAuth(a.Webhook, true)
}

func basicAuth(svc authentication.IBasicAuthService, openWhenDisabled bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !svc.Enabled() {
			if openWhenDisabled {
				return ctx.Next()
			}
			return responseUnauthorized(ctx, "Basic", "Authentication not configured")
		}

		// get auth from header
		auth := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Basic ") {
			return responseUnauthorized(ctx, "Basic", "Invalid auth")
		}

		// decode auth
		username, password := svc.DecodeFromHeader(auth)
		if !svc.Validate(username, password) {
			return responseUnauthorized(ctx, "Basic", "Invalid auth")
		}
		return ctx.Next()
	}
}

func responseUnauthorized(c *fiber.Ctx, _ string, message ...string) error {
	c.Set("WWW-Authenticate", "Basic realm=Restricted")
	response := fiber.Map{
		"message": message[0],
	}
	if len(message) > 1 {
		response["statusCode"] = message[1]
	}
	return c.Status(http.StatusUnauthorized).JSON(response)
}
